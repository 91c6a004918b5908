package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.EducationMaterial) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.EducationMaterial, error) {
	var material model.EducationMaterial
	if err := r.DB.First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialRepository) ListByClassroom(classroomID uint, page, pageSize int) ([]model.EducationMaterial, int64, error) {
	var materials []model.EducationMaterial
	var total int64

	query := r.DB.Model(&model.EducationMaterial{}).Where("classroom_id = ?", classroomID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&materials).Error
	return materials, total, err
}

func (r *MaterialRepository) Delete(id uint) error {
	return r.DB.Delete(&model.EducationMaterial{}, id).Error
}
