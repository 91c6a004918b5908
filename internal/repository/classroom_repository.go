package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type ClassroomRepository struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{DB: db}
}

func (r *ClassroomRepository) Create(classroom *model.Classroom) error {
	return r.DB.Create(classroom).Error
}

func (r *ClassroomRepository) FindByID(id uint) (*model.Classroom, error) {
	var c model.Classroom
	err := r.DB.Preload("Instructor").First(&c, id).Error
	return &c, err
}

func (r *ClassroomRepository) List(page, pageSize int) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.DB.Order("grade_level asc, class_section asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&classrooms).Error
	return classrooms, err
}

func (r *ClassroomRepository) ListByInstructor(instructorID uint) ([]model.Classroom, error) {
	var cs []model.Classroom
	err := r.DB.Where("instructor_id = ?", instructorID).Order("grade_level asc, class_section asc").Find(&cs).Error
	return cs, err
}

func (r *ClassroomRepository) ListByStudent(studentID uint) ([]model.Classroom, error) {
	var cs []model.Classroom
	err := r.DB.
		Joins("JOIN classroom_students ON classroom_students.classroom_id = classrooms.id").
		Where("classroom_students.student_id = ? AND classroom_students.deleted_at IS NULL", studentID).
		Preload("Instructor").
		Find(&cs).Error
	return cs, err
}

func (r *ClassroomRepository) Update(classroom *model.Classroom) error {
	return r.DB.Save(classroom).Error
}

func (r *ClassroomRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Classroom{}, id).Error
}

func (r *ClassroomRepository) Enroll(classroomID, studentID uint) error {
	return r.DB.Create(&model.ClassroomStudent{
		ClassroomID: classroomID,
		StudentID:   studentID,
	}).Error
}

func (r *ClassroomRepository) Unenroll(classroomID, studentID uint) error {
	return r.DB.Where("classroom_id = ? AND student_id = ?", classroomID, studentID).
		Delete(&model.ClassroomStudent{}).Error
}

func (r *ClassroomRepository) IsEnrolled(classroomID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassroomStudent{}).
		Where("classroom_id = ? AND student_id = ?", classroomID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *ClassroomRepository) ListStudents(classroomID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.
		Joins("JOIN classroom_students ON classroom_students.student_id = users.id").
		Where("classroom_students.classroom_id = ? AND classroom_students.deleted_at IS NULL", classroomID).
		Find(&students).Error
	return students, err
}
