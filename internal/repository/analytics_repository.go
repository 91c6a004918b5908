package repository

import (
	"school_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// ResponseFilter 报表统计的可选过滤条件，零值表示不过滤。
type ResponseFilter struct {
	ClassroomID uint
	QuizID      uint
	TeacherID   uint
}

// ListResponses 返回过滤后的原始作答，报表从这里重算每题正确性。
func (r *AnalyticsRepository) ListResponses(filter ResponseFilter) ([]model.StudentResponse, error) {
	query := r.DB.Model(&model.StudentResponse{})

	if filter.ClassroomID > 0 {
		query = query.Where("student_responses.classroom_id = ?", filter.ClassroomID)
	}
	if filter.QuizID > 0 {
		query = query.Where("student_responses.quiz_id = ?", filter.QuizID)
	}
	if filter.TeacherID > 0 {
		query = query.
			Joins("JOIN quizzes ON quizzes.id = student_responses.quiz_id").
			Where("quizzes.created_by = ?", filter.TeacherID)
	}

	var resps []model.StudentResponse
	err := query.Find(&resps).Error
	return resps, err
}

// ListQuestionsForQuizzes 一次取出多个测验的题目与选项
func (r *AnalyticsRepository) ListQuestionsForQuizzes(quizIDs []uint) ([]model.Question, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var qs []model.Question
	err := r.DB.Where("quiz_id IN ?", quizIDs).Preload("Choices").Find(&qs).Error
	return qs, err
}

type QuestionTypeCount struct {
	QuestionType string `json:"questionType"`
	Count        int64  `json:"count"`
}

func (r *AnalyticsRepository) CountQuestionsByType() ([]QuestionTypeCount, error) {
	var counts []QuestionTypeCount
	err := r.DB.Model(&model.Question{}).
		Select("question_type, count(id) as count").
		Group("question_type").
		Order("question_type asc").
		Scan(&counts).Error
	return counts, err
}

// ClassroomPassFail 单个班级在某测验下的及格/不及格计数
type ClassroomPassFail struct {
	QuizID       uint   `json:"quizId"`
	ClassroomID  uint   `json:"classroomId"`
	GradeLevel   string `json:"gradeLevel"`
	ClassSection string `json:"classSection"`
	Passed       int    `json:"passed"`
	Failed       int    `json:"failed"`
}

// PassFailByClassroom 按测验和班级分组统计既有 QuizScore 的及格情况。
// 直接信任落库时的 status，不重算正确性。
func (r *AnalyticsRepository) PassFailByClassroom(quizIDs []uint) ([]ClassroomPassFail, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var rows []ClassroomPassFail
	err := r.DB.Model(&model.QuizScore{}).
		Select(`quiz_scores.quiz_id,
			quiz_scores.classroom_id,
			classrooms.grade_level,
			classrooms.class_section,
			SUM(CASE WHEN quiz_scores.status = 'passed' THEN 1 ELSE 0 END) as passed,
			SUM(CASE WHEN quiz_scores.status = 'failed' THEN 1 ELSE 0 END) as failed`).
		Joins("JOIN classrooms ON classrooms.id = quiz_scores.classroom_id").
		Where("quiz_scores.quiz_id IN ?", quizIDs).
		Group("quiz_scores.quiz_id, quiz_scores.classroom_id, classrooms.grade_level, classrooms.class_section").
		Scan(&rows).Error
	return rows, err
}
