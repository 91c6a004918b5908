package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrNotEnrolled          = errors.New("student not enrolled in classroom")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrNotAStudent          = errors.New("user is not a student")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
)
