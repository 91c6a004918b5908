package service

import (
	"testing"

	"school_backend/internal/config"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{}
}

func seedUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    name + "@school.test",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedClassroom(t *testing.T, db *gorm.DB, instructorID uint) *model.Classroom {
	t.Helper()

	classroom := &model.Classroom{
		GradeLevel:   "Grade 3",
		ClassSection: "Hope",
		SubjectName:  "Math",
		InstructorID: instructorID,
	}
	require.NoError(t, db.Create(classroom).Error)
	return classroom
}

func enrollStudent(t *testing.T, db *gorm.DB, classroomID, studentID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.ClassroomStudent{ClassroomID: classroomID, StudentID: studentID}).Error)
}

// seedQuiz 建一份覆盖全部四种题型的测验
func seedQuiz(t *testing.T, db *gorm.DB, classroomID, teacherID uint) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{
		ClassroomID: classroomID,
		Title:       "Unit 1 Review",
		CreatedBy:   teacherID,
		TypeOf:      "quiz",
		Questions: []model.Question{
			{
				Text:         "2 + 2 = ?",
				QuestionType: "single",
				Choices: []model.Choice{
					{Text: "3"},
					{Text: "4", IsCorrect: true},
				},
			},
			{
				Text:         "Pick the even numbers",
				QuestionType: "multi",
				Choices: []model.Choice{
					{Text: "2", IsCorrect: true},
					{Text: "3"},
					{Text: "4", IsCorrect: true},
				},
			},
			{
				Text:          "Capital of France?",
				QuestionType:  "identification",
				CorrectAnswer: "Paris",
			},
			{
				Text:          "The earth is round.",
				QuestionType:  "true_false",
				CorrectAnswer: "true",
			},
		},
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func newSubmissionService(db *gorm.DB, cfg *config.Config) *QuizResponseService {
	return NewQuizResponseService(
		repository.NewQuizRepository(db),
		repository.NewResponseRepository(db),
		repository.NewClassroomRepository(db),
		repository.NewUserRepository(db),
		cfg,
	)
}
