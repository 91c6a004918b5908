package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"

	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialService struct {
	MaterialRepo  *repository.MaterialRepository
	ClassroomRepo *repository.ClassroomRepository
	Storage       *StorageService
}

func NewMaterialService(materialRepo *repository.MaterialRepository, classroomRepo *repository.ClassroomRepository, storage *StorageService) *MaterialService {
	return &MaterialService{
		MaterialRepo:  materialRepo,
		ClassroomRepo: classroomRepo,
		Storage:       storage,
	}
}

// Upload 教师向自己的班级上传资料，对象键用 UUID 防止覆盖
func (s *MaterialService) Upload(ctx context.Context, classroomID, uploaderID uint, isAdmin bool, title string, file *multipart.FileHeader) (*model.EducationMaterial, error) {
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassroomNotFound
		}
		return nil, err
	}
	if !isAdmin && classroom.InstructorID != uploaderID {
		return nil, util.ErrPermissionDenied
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	objectKey := "materials/" + uuid.NewString() + filepath.Ext(file.Filename)

	fileURL, err := s.Storage.Provider.Upload(ctx, objectKey, src, file.Size, contentType)
	if err != nil {
		return nil, err
	}

	material := &model.EducationMaterial{
		ClassroomID: classroomID,
		Title:       title,
		FileName:    file.Filename,
		ObjectKey:   objectKey,
		FileURL:     fileURL,
		ContentType: contentType,
		Size:        file.Size,
		UploadedBy:  uploaderID,
	}
	if err := s.MaterialRepo.Create(material); err != nil {
		// 入库失败时回收已上传的对象
		_ = s.Storage.Provider.Delete(ctx, objectKey)
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) ListByClassroom(classroomID uint, claims *util.Claims, page, pageSize int) ([]model.EducationMaterial, int64, error) {
	if claims.Role == model.Student {
		enrolled, err := s.ClassroomRepo.IsEnrolled(classroomID, claims.UserID)
		if err != nil {
			return nil, 0, err
		}
		if !enrolled {
			return nil, 0, util.ErrNotEnrolled
		}
	}
	return s.MaterialRepo.ListByClassroom(classroomID, page, pageSize)
}

func (s *MaterialService) Delete(ctx context.Context, id, operatorID uint, isAdmin bool) error {
	material, err := s.MaterialRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !isAdmin && material.UploadedBy != operatorID {
		return util.ErrPermissionDenied
	}

	if err := s.MaterialRepo.Delete(id); err != nil {
		return err
	}
	_ = s.Storage.Provider.Delete(ctx, material.ObjectKey)
	return nil
}
