package service

import (
	"encoding/json"
	"errors"

	"school_backend/internal/config"
	"school_backend/internal/grading"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"school_backend/pkg/monitoring"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizResponseService struct {
	QuizRepo      *repository.QuizRepository
	ResponseRepo  *repository.ResponseRepository
	ClassroomRepo *repository.ClassroomRepository
	UserRepo      *repository.UserRepository
	Cfg           *config.Config
}

func NewQuizResponseService(
	quizRepo *repository.QuizRepository,
	responseRepo *repository.ResponseRepository,
	classroomRepo *repository.ClassroomRepository,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *QuizResponseService {
	return &QuizResponseService{
		QuizRepo:      quizRepo,
		ResponseRepo:  responseRepo,
		ClassroomRepo: classroomRepo,
		UserRepo:      userRepo,
		Cfg:           cfg,
	}
}

type SubmitRequest struct {
	// Responses 键为题目 ID，值为该题的原始作答
	Responses map[string]interface{} `json:"responses" binding:"required"`
}

type SubmitResult struct {
	ResponseID      uint    `json:"responseId"`
	QuizID          uint    `json:"quizId"`
	TotalScore      int     `json:"totalScore"`
	TotalPossible   int     `json:"totalPossible"`
	PercentageScore float64 `json:"percentageScore"`
	Status          string  `json:"status"`
}

// toGradingQuestion 把持久化的题目转成评分引擎的入参
func toGradingQuestion(q *model.Question) grading.Question {
	gq := grading.Question{
		ID:            util.FormatUint(q.ID),
		Type:          grading.QuestionType(q.QuestionType),
		CorrectAnswer: q.CorrectAnswer,
	}
	for _, c := range q.Choices {
		gq.Choices = append(gq.Choices, grading.Choice{
			ID:        util.FormatUint(c.ID),
			Text:      c.Text,
			IsCorrect: c.IsCorrect,
		})
	}
	return gq
}

// Submit 接收学生作答并立即评分。作答与评分在同一事务里写入，
// 成功后两者都不可变更，重复提交直接拒绝。
func (s *QuizResponseService) Submit(studentID, quizID uint, req *SubmitRequest) (*SubmitResult, error) {
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if student.Role != model.Student {
		return nil, util.ErrNotAStudent
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	enrolled, err := s.ClassroomRepo.IsEnrolled(quiz.ClassroomID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	submitted, err := s.ResponseRepo.HasSubmitted(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if submitted {
		monitoring.QuizSubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, util.ErrQuizAlreadySubmitted
	}

	questions := make([]grading.Question, 0, len(quiz.Questions))
	byID := make(map[string]grading.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		gq := toGradingQuestion(&quiz.Questions[i])
		questions = append(questions, gq)
		byID[gq.ID] = gq
	}

	// 提交阶段严格校验：未知题目和畸形作答一律整单拒绝，不落库
	for questionID, raw := range req.Responses {
		gq, ok := byID[questionID]
		if !ok {
			monitoring.QuizSubmissionCounter.WithLabelValues("rejected").Inc()
			return nil, &grading.UnknownQuestionError{QuestionID: questionID}
		}
		if err := grading.ValidateShape(gq.Type, questionID, raw); err != nil {
			monitoring.QuizSubmissionCounter.WithLabelValues("rejected").Inc()
			return nil, err
		}
	}

	result := grading.Grade(questions, req.Responses, s.Cfg.Grading.PassThreshold)

	raw, err := json.Marshal(req.Responses)
	if err != nil {
		return nil, err
	}

	response := &model.StudentResponse{
		StudentID:   studentID,
		QuizID:      quizID,
		ClassroomID: quiz.ClassroomID,
		Responses:   datatypes.JSON(raw),
	}
	score := &model.QuizScore{
		TotalScore:      result.TotalScore,
		TotalPossible:   result.TotalPossible,
		PercentageScore: result.Percentage,
		Status:          string(result.Status),
	}

	if err := s.ResponseRepo.CreateWithScore(response, score); err != nil {
		monitoring.QuizSubmissionCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	monitoring.QuizSubmissionCounter.WithLabelValues(score.Status).Inc()

	return &SubmitResult{
		ResponseID:      response.ID,
		QuizID:          quizID,
		TotalScore:      score.TotalScore,
		TotalPossible:   score.TotalPossible,
		PercentageScore: score.PercentageScore,
		Status:          score.Status,
	}, nil
}

// GetMyScore 学生查看自己在某测验的成绩
func (s *QuizResponseService) GetMyScore(studentID, quizID uint) (*model.QuizScore, error) {
	scores, err := s.ResponseRepo.ListScoresByStudent(studentID)
	if err != nil {
		return nil, err
	}
	for i := range scores {
		if scores[i].QuizID == quizID {
			return &scores[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *QuizResponseService) ListMyScores(studentID uint) ([]model.QuizScore, error) {
	return s.ResponseRepo.ListScoresByStudent(studentID)
}

// ListScoresForStudent 查看指定学生的全部成绩。
// 允许：学生本人、其关联家长、管理员。
func (s *QuizResponseService) ListScoresForStudent(studentID uint, claims *util.Claims) ([]model.QuizScore, error) {
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if student.Role != model.Student {
		return nil, util.ErrNotAStudent
	}

	switch {
	case claims.Role == model.Admin:
	case claims.UserID == studentID:
	case claims.Role == model.Parent && student.ParentID != nil && *student.ParentID == claims.UserID:
	default:
		return nil, util.ErrPermissionDenied
	}

	return s.ResponseRepo.ListScoresByStudent(studentID)
}

// ListScoresForQuiz 教师查看某测验全部成绩，仅限出题人或管理员
func (s *QuizResponseService) ListScoresForQuiz(quizID, operatorID uint, isAdmin bool) ([]model.QuizScore, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !isAdmin && quiz.CreatedBy != operatorID {
		return nil, util.ErrPermissionDenied
	}
	return s.ResponseRepo.ListScoresByQuiz(quizID)
}

func (s *QuizResponseService) ListScoresForClassroom(classroomID, operatorID uint, isAdmin bool) ([]model.QuizScore, error) {
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassroomNotFound
		}
		return nil, err
	}
	if !isAdmin && classroom.InstructorID != operatorID {
		return nil, util.ErrPermissionDenied
	}
	return s.ResponseRepo.ListScoresByClassroom(classroomID)
}

// GetResponse 查看一次提交的原始作答。学生只能看自己的。
func (s *QuizResponseService) GetResponse(responseID uint, claims *util.Claims) (*model.StudentResponse, error) {
	response, err := s.ResponseRepo.FindByID(responseID)
	if err != nil {
		return nil, err
	}
	if claims.Role == model.Student && response.StudentID != claims.UserID {
		return nil, util.ErrPermissionDenied
	}
	return response, nil
}
