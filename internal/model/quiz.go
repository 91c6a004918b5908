package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	ClassroomID uint       `gorm:"index;type:bigint unsigned" json:"classroomId"`
	Classroom   *Classroom `gorm:"foreignKey:ClassroomID" json:"classroom,omitempty"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedBy   uint       `gorm:"index;type:bigint unsigned" json:"createdBy"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	TypeOf      string     `gorm:"size:20;default:'quiz'" json:"typeOf"` // quiz, activity
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question 题目。QuestionType 取值 single / multi / identification / true_false，
// 由 internal/grading 定义比较规则。
type Question struct {
	BaseModel
	QuizID        uint     `gorm:"index;type:bigint unsigned" json:"quizId"`
	Text          string   `gorm:"type:text;not null" json:"text"`
	QuestionType  string   `gorm:"size:50;not null" json:"questionType"`
	CorrectAnswer string   `gorm:"size:255" json:"correctAnswer,omitempty"` // identification / true_false 的标准答案
	Choices       []Choice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}

// StudentResponse 学生一次提交的原始作答。Responses 为
// {questionId: rawAnswer} 的 JSON，rawAnswer 形态由题型决定。
// 创建后不可变，评分与分析都从这里的原始数据出发。
type StudentResponse struct {
	BaseModel
	StudentID   uint           `gorm:"index:idx_response_student_quiz;type:bigint unsigned" json:"studentId"`
	Student     *User          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	QuizID      uint           `gorm:"index:idx_response_student_quiz;type:bigint unsigned" json:"quizId"`
	Quiz        *Quiz          `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	ClassroomID uint           `gorm:"index;type:bigint unsigned" json:"classroomId"`
	Classroom   *Classroom     `gorm:"foreignKey:ClassroomID" json:"classroom,omitempty"`
	Responses   datatypes.JSON `gorm:"type:json" json:"responses"`
}

func (StudentResponse) TableName() string {
	return "student_responses"
}

const (
	ScoreStatusPassed = "passed"
	ScoreStatusFailed = "failed"
)

// QuizScore 与 StudentResponse 一对一的评分结果，创建后不可变。
type QuizScore struct {
	BaseModel
	StudentID         uint             `gorm:"index;type:bigint unsigned" json:"studentId"`
	Student           *User            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	QuizID            uint             `gorm:"index;type:bigint unsigned" json:"quizId"`
	Quiz              *Quiz            `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	ClassroomID       uint             `gorm:"index;type:bigint unsigned" json:"classroomId"`
	StudentResponseID uint             `gorm:"uniqueIndex;type:bigint unsigned" json:"studentResponseId"`
	StudentResponse   *StudentResponse `gorm:"foreignKey:StudentResponseID" json:"-"`
	TotalScore        int              `gorm:"not null" json:"totalScore"`
	TotalPossible     int              `gorm:"not null" json:"totalPossible"`
	PercentageScore   float64          `gorm:"type:decimal(5,2)" json:"percentageScore"`
	Status            string           `gorm:"size:10;not null" json:"status"` // passed, failed
}

func (QuizScore) TableName() string {
	return "quiz_scores"
}
