package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// CreateWithScore 在同一事务里写入作答与评分。
// 任何一步失败整体回滚：不允许存在没有评分的作答，反之亦然。
func (r *ResponseRepository) CreateWithScore(response *model.StudentResponse, score *model.QuizScore) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}

		score.StudentResponseID = response.ID
		score.StudentID = response.StudentID
		score.QuizID = response.QuizID
		score.ClassroomID = response.ClassroomID

		return tx.Create(score).Error
	})
}

func (r *ResponseRepository) FindByID(id uint) (*model.StudentResponse, error) {
	var resp model.StudentResponse
	err := r.DB.Preload("Student").First(&resp, id).Error
	return &resp, err
}

func (r *ResponseRepository) HasSubmitted(studentID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudentResponse{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResponseRepository) ListByQuiz(quizID uint) ([]model.StudentResponse, error) {
	var resps []model.StudentResponse
	err := r.DB.Where("quiz_id = ?", quizID).Preload("Student").Order("created_at asc").Find(&resps).Error
	return resps, err
}

func (r *ResponseRepository) FindScoreByResponse(responseID uint) (*model.QuizScore, error) {
	var score model.QuizScore
	err := r.DB.Where("student_response_id = ?", responseID).First(&score).Error
	return &score, err
}

func (r *ResponseRepository) ListScoresByQuiz(quizID uint) ([]model.QuizScore, error) {
	var scores []model.QuizScore
	err := r.DB.Where("quiz_id = ?", quizID).Preload("Student").Order("created_at asc").Find(&scores).Error
	return scores, err
}

func (r *ResponseRepository) ListScoresByClassroom(classroomID uint) ([]model.QuizScore, error) {
	var scores []model.QuizScore
	err := r.DB.Where("classroom_id = ?", classroomID).
		Preload("Student").Preload("Quiz").
		Order("created_at desc").Find(&scores).Error
	return scores, err
}

func (r *ResponseRepository) ListScoresByStudent(studentID uint) ([]model.QuizScore, error) {
	var scores []model.QuizScore
	err := r.DB.Where("student_id = ?", studentID).
		Preload("Quiz").
		Order("created_at desc").Find(&scores).Error
	return scores, err
}
