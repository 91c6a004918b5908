package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// FindByID 返回带全部题目与选项的测验
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions.Choices").Preload("Classroom").First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) ListByClassroom(classroomID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("classroom_id = ?", classroomID).Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListByCreator(teacherID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("created_by = ?", teacherID).Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListByClassrooms(classroomIDs []uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("classroom_id IN ?", classroomIDs).
		Preload("Classroom").
		Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Quiz{}, id).Error
}

func (r *QuizRepository) HasResponses(quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudentResponse{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Choices").First(&q, id).Error
	return &q, err
}

func (r *QuizRepository) ListQuestions(quizID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Preload("Choices").Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *QuizRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuizRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

// ReplaceChoices 整体替换题目的选项
func (r *QuizRepository) ReplaceChoices(questionID uint, choices []model.Choice) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		for i := range choices {
			choices[i].QuestionID = questionID
			if err := tx.Create(&choices[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
