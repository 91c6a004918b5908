package service

import (
	"errors"

	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"

	"gorm.io/gorm"
)

type ClassroomService struct {
	ClassroomRepo *repository.ClassroomRepository
	UserRepo      *repository.UserRepository
}

func NewClassroomService(classroomRepo *repository.ClassroomRepository, userRepo *repository.UserRepository) *ClassroomService {
	return &ClassroomService{
		ClassroomRepo: classroomRepo,
		UserRepo:      userRepo,
	}
}

type CreateClassroomRequest struct {
	GradeLevel   string `json:"gradeLevel" binding:"required"`
	ClassSection string `json:"classSection" binding:"required"`
	SubjectName  string `json:"subjectName" binding:"required"`
}

type UpdateClassroomRequest struct {
	GradeLevel   string `json:"gradeLevel"`
	ClassSection string `json:"classSection"`
	SubjectName  string `json:"subjectName"`
}

func (s *ClassroomService) Create(instructorID uint, req *CreateClassroomRequest) (*model.Classroom, error) {
	classroom := &model.Classroom{
		GradeLevel:   req.GradeLevel,
		ClassSection: req.ClassSection,
		SubjectName:  req.SubjectName,
		InstructorID: instructorID,
	}
	if err := s.ClassroomRepo.Create(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Get(id uint) (*model.Classroom, error) {
	classroom, err := s.ClassroomRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassroomNotFound
		}
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Update(id, operatorID uint, isAdmin bool, req *UpdateClassroomRequest) (*model.Classroom, error) {
	classroom, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && classroom.InstructorID != operatorID {
		return nil, util.ErrPermissionDenied
	}

	if req.GradeLevel != "" {
		classroom.GradeLevel = req.GradeLevel
	}
	if req.ClassSection != "" {
		classroom.ClassSection = req.ClassSection
	}
	if req.SubjectName != "" {
		classroom.SubjectName = req.SubjectName
	}

	if err := s.ClassroomRepo.Update(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Delete(id, operatorID uint, isAdmin bool) error {
	classroom, err := s.Get(id)
	if err != nil {
		return err
	}
	if !isAdmin && classroom.InstructorID != operatorID {
		return util.ErrPermissionDenied
	}
	return s.ClassroomRepo.Delete(id)
}

// Enroll 将学生加入班级，重复加入静默忽略
func (s *ClassroomService) Enroll(classroomID, studentID uint) error {
	if _, err := s.Get(classroomID); err != nil {
		return err
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return util.ErrUserNotFound
	}
	if student.Role != model.Student {
		return util.ErrNotAStudent
	}

	enrolled, err := s.ClassroomRepo.IsEnrolled(classroomID, studentID)
	if err != nil {
		return err
	}
	if enrolled {
		return nil
	}
	return s.ClassroomRepo.Enroll(classroomID, studentID)
}

func (s *ClassroomService) Unenroll(classroomID, studentID uint) error {
	if _, err := s.Get(classroomID); err != nil {
		return err
	}
	return s.ClassroomRepo.Unenroll(classroomID, studentID)
}

func (s *ClassroomService) ListStudents(classroomID uint) ([]model.User, error) {
	if _, err := s.Get(classroomID); err != nil {
		return nil, err
	}
	students, err := s.ClassroomRepo.ListStudents(classroomID)
	if err != nil {
		return nil, err
	}
	for i := range students {
		students[i].Password = ""
	}
	return students, nil
}

// ListForUser 按角色返回可见班级：教师看自己授课的，学生看已加入的，管理员看全部
func (s *ClassroomService) ListForUser(user *util.Claims, page, pageSize int) ([]model.Classroom, error) {
	switch user.Role {
	case model.Teacher:
		return s.ClassroomRepo.ListByInstructor(user.UserID)
	case model.Student:
		return s.ClassroomRepo.ListByStudent(user.UserID)
	default:
		return s.ClassroomRepo.List(page, pageSize)
	}
}
