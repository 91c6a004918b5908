package service

import (
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	GradeLevel string `json:"gradeLevel"`
	Avatar     string `json:"avatar"`
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.GradeLevel != "" {
		user.GradeLevel = req.GradeLevel
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) ListByRole(role model.UserRole, page, pageSize int) ([]model.User, int64, error) {
	users, total, err := s.UserRepo.ListByRole(role, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, total, nil
}
