package service

import (
	"errors"
	"fmt"
	"time"

	"school_backend/internal/grading"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo      *repository.QuizRepository
	ClassroomRepo *repository.ClassroomRepository
	ResponseRepo  *repository.ResponseRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, classroomRepo *repository.ClassroomRepository, responseRepo *repository.ResponseRepository) *QuizService {
	return &QuizService{
		QuizRepo:      quizRepo,
		ClassroomRepo: classroomRepo,
		ResponseRepo:  responseRepo,
	}
}

type ChoiceInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionInput struct {
	Text          string        `json:"text" binding:"required"`
	QuestionType  string        `json:"questionType" binding:"required"`
	CorrectAnswer string        `json:"correctAnswer"`
	Choices       []ChoiceInput `json:"choices"`
}

type CreateQuizRequest struct {
	ClassroomID uint            `json:"classroomId" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"dueDate"`
	TypeOf      string          `json:"typeOf"`
	Questions   []QuestionInput `json:"questions"`
}

type UpdateQuizRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// QuizListItem 学生端列表项，附带是否已提交
type QuizListItem struct {
	model.Quiz
	HasSubmitted bool `json:"hasSubmitted"`
}

// validateQuestion 建题时校验，保证之后评分总有依据：
// 选择题至少一个正确选项，主观题和判断题必须有标准答案。
func validateQuestion(in *QuestionInput) error {
	t := grading.QuestionType(in.QuestionType)
	if !grading.KnownType(t) {
		return fmt.Errorf("unknown question type: %s", in.QuestionType)
	}

	switch t {
	case grading.Single, grading.Multi:
		correct := 0
		for _, c := range in.Choices {
			if c.IsCorrect {
				correct++
			}
		}
		if len(in.Choices) < 2 {
			return errors.New("choice questions need at least two choices")
		}
		if correct == 0 {
			return errors.New("choice questions need at least one correct choice")
		}
		if t == grading.Single && correct > 1 {
			return errors.New("single choice questions allow exactly one correct choice")
		}
	case grading.Identification:
		if in.CorrectAnswer == "" {
			return errors.New("identification questions need a correct answer")
		}
	case grading.TrueFalse:
		if in.CorrectAnswer == "" {
			return errors.New("true/false questions need a correct answer")
		}
	}
	return nil
}

func buildQuestion(in *QuestionInput) model.Question {
	q := model.Question{
		Text:          in.Text,
		QuestionType:  in.QuestionType,
		CorrectAnswer: in.CorrectAnswer,
	}
	for _, c := range in.Choices {
		q.Choices = append(q.Choices, model.Choice{Text: c.Text, IsCorrect: c.IsCorrect})
	}
	return q
}

func (s *QuizService) Create(creatorID uint, isAdmin bool, req *CreateQuizRequest) (*model.Quiz, error) {
	classroom, err := s.ClassroomRepo.FindByID(req.ClassroomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassroomNotFound
		}
		return nil, err
	}
	if !isAdmin && classroom.InstructorID != creatorID {
		return nil, util.ErrPermissionDenied
	}

	for i := range req.Questions {
		if err := validateQuestion(&req.Questions[i]); err != nil {
			return nil, err
		}
	}

	typeOf := req.TypeOf
	if typeOf == "" {
		typeOf = "quiz"
	}

	quiz := &model.Quiz{
		ClassroomID: req.ClassroomID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   creatorID,
		DueDate:     req.DueDate,
		TypeOf:      typeOf,
	}
	for i := range req.Questions {
		quiz.Questions = append(quiz.Questions, buildQuestion(&req.Questions[i]))
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// GetForStudent 返回学生视角的测验，隐藏答案字段
func (s *QuizService) GetForStudent(id, studentID uint) (*model.Quiz, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.ClassroomRepo.IsEnrolled(quiz.ClassroomID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	stripAnswers(quiz)
	return quiz, nil
}

func stripAnswers(quiz *model.Quiz) {
	for i := range quiz.Questions {
		quiz.Questions[i].CorrectAnswer = ""
		for j := range quiz.Questions[i].Choices {
			quiz.Questions[i].Choices[j].IsCorrect = false
		}
	}
}

func (s *QuizService) Update(id, operatorID uint, isAdmin bool, req *UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && quiz.CreatedBy != operatorID {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}
	if req.DueDate != nil {
		quiz.DueDate = req.DueDate
	}

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Delete 已有学生作答的测验不允许删除
func (s *QuizService) Delete(id, operatorID uint, isAdmin bool) error {
	quiz, err := s.Get(id)
	if err != nil {
		return err
	}
	if !isAdmin && quiz.CreatedBy != operatorID {
		return util.ErrPermissionDenied
	}

	hasResponses, err := s.QuizRepo.HasResponses(id)
	if err != nil {
		return err
	}
	if hasResponses {
		return errors.New("quiz has submissions and cannot be deleted")
	}
	return s.QuizRepo.Delete(id)
}

func (s *QuizService) AddQuestion(quizID, operatorID uint, isAdmin bool, in *QuestionInput) (*model.Question, error) {
	quiz, err := s.Get(quizID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && quiz.CreatedBy != operatorID {
		return nil, util.ErrPermissionDenied
	}

	if err := validateQuestion(in); err != nil {
		return nil, err
	}

	question := buildQuestion(in)
	question.QuizID = quizID
	if err := s.QuizRepo.CreateQuestion(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuizService) UpdateQuestion(questionID, operatorID uint, isAdmin bool, in *QuestionInput) (*model.Question, error) {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	quiz, err := s.Get(question.QuizID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && quiz.CreatedBy != operatorID {
		return nil, util.ErrPermissionDenied
	}

	if err := validateQuestion(in); err != nil {
		return nil, err
	}

	question.Text = in.Text
	question.QuestionType = in.QuestionType
	question.CorrectAnswer = in.CorrectAnswer
	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}

	choices := make([]model.Choice, 0, len(in.Choices))
	for _, c := range in.Choices {
		choices = append(choices, model.Choice{QuestionID: question.ID, Text: c.Text, IsCorrect: c.IsCorrect})
	}
	if err := s.QuizRepo.ReplaceChoices(question.ID, choices); err != nil {
		return nil, err
	}
	question.Choices = choices
	return question, nil
}

func (s *QuizService) DeleteQuestion(questionID, operatorID uint, isAdmin bool) error {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}

	quiz, err := s.Get(question.QuizID)
	if err != nil {
		return err
	}
	if !isAdmin && quiz.CreatedBy != operatorID {
		return util.ErrPermissionDenied
	}
	return s.QuizRepo.DeleteQuestion(questionID)
}

func (s *QuizService) ListByClassroom(classroomID uint) ([]model.Quiz, error) {
	return s.QuizRepo.ListByClassroom(classroomID)
}

func (s *QuizService) ListByCreator(teacherID uint) ([]model.Quiz, error) {
	return s.QuizRepo.ListByCreator(teacherID)
}

// ListForStudent 返回学生所有班级的测验，并标记已提交的
func (s *QuizService) ListForStudent(studentID uint) ([]QuizListItem, error) {
	classrooms, err := s.ClassroomRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	if len(classrooms) == 0 {
		return []QuizListItem{}, nil
	}

	classroomIDs := make([]uint, 0, len(classrooms))
	for _, c := range classrooms {
		classroomIDs = append(classroomIDs, c.ID)
	}

	quizzes, err := s.QuizRepo.ListByClassrooms(classroomIDs)
	if err != nil {
		return nil, err
	}

	items := make([]QuizListItem, 0, len(quizzes))
	for _, quiz := range quizzes {
		submitted, err := s.ResponseRepo.HasSubmitted(studentID, quiz.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, QuizListItem{Quiz: quiz, HasSubmitted: submitted})
	}
	return items, nil
}
