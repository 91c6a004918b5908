package service

import (
	"testing"

	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAnalyticsService(db *gorm.DB) *AnalyticsService {
	return NewAnalyticsService(
		repository.NewAnalyticsRepository(db),
		repository.NewQuizRepository(db),
		nil,
	)
}

func submitAnswers(t *testing.T, db *gorm.DB, studentID, quizID uint, answers map[string]interface{}) {
	t.Helper()
	svc := newSubmissionService(db, testConfig())
	_, err := svc.Submit(studentID, quizID, &SubmitRequest{Responses: answers})
	require.NoError(t, err)
}

func TestQuestionTypePerformanceRecomputesFromRawResponses(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	alice := seedUser(t, db, "alice", model.Student)
	bob := seedUser(t, db, "bob", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, alice.ID)
	enrollStudent(t, db, classroom.ID, bob.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)
	q := quiz.Questions

	// alice 全对，bob 主观题和判断题答错
	submitAnswers(t, db, alice.ID, quiz.ID, map[string]interface{}{
		util.FormatUint(q[0].ID): util.FormatUint(q[0].Choices[1].ID),
		util.FormatUint(q[2].ID): "Paris",
		util.FormatUint(q[3].ID): "true",
	})
	submitAnswers(t, db, bob.ID, quiz.ID, map[string]interface{}{
		util.FormatUint(q[0].ID): util.FormatUint(q[0].Choices[0].ID),
		util.FormatUint(q[2].ID): "London",
		util.FormatUint(q[3].ID): "false",
	})

	svc := newAnalyticsService(db)
	result, err := svc.QuestionTypePerformance(repository.ResponseFilter{QuizID: quiz.ID})
	require.NoError(t, err)

	byType := make(map[string]TypePerformance)
	for _, p := range result.PerType {
		byType[p.QuestionType] = p
	}

	// multi 无人作答，不应出现在统计里
	assert.NotContains(t, byType, "multi")

	assert.Equal(t, 1, byType["single"].Correct)
	assert.Equal(t, 2, byType["single"].Total)
	assert.InDelta(t, 50.0, byType["single"].Percentage, 0.001)

	assert.Equal(t, 1, byType["identification"].Correct)
	assert.Equal(t, 2, byType["identification"].Total)

	assert.Equal(t, 1, byType["true_false"].Correct)
	assert.Equal(t, 2, byType["true_false"].Total)

	assert.Equal(t, result.Chart.Labels, []string{"identification", "single", "true_false"})
	require.Len(t, result.Chart.Datasets, 1)
	assert.Len(t, result.Chart.Datasets[0].Data, 3)
}

func TestQuestionTypePerformanceTeacherFilter(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	other := seedUser(t, db, "other", model.Teacher)
	student := seedUser(t, db, "student", model.Student)

	classroomA := seedClassroom(t, db, teacher.ID)
	classroomB := seedClassroom(t, db, other.ID)
	enrollStudent(t, db, classroomA.ID, student.ID)
	enrollStudent(t, db, classroomB.ID, student.ID)

	quizA := seedQuiz(t, db, classroomA.ID, teacher.ID)
	quizB := seedQuiz(t, db, classroomB.ID, other.ID)

	submitAnswers(t, db, student.ID, quizA.ID, map[string]interface{}{
		util.FormatUint(quizA.Questions[2].ID): "Paris",
	})
	submitAnswers(t, db, student.ID, quizB.ID, map[string]interface{}{
		util.FormatUint(quizB.Questions[2].ID): "Paris",
	})

	svc := newAnalyticsService(db)
	result, err := svc.QuestionTypePerformance(repository.ResponseFilter{TeacherID: teacher.ID})
	require.NoError(t, err)

	require.Len(t, result.PerType, 1)
	assert.Equal(t, "identification", result.PerType[0].QuestionType)
	assert.Equal(t, 1, result.PerType[0].Total)
}

func TestPassFailBreakdownGroupsByClassroom(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	alice := seedUser(t, db, "alice", model.Student)
	bob := seedUser(t, db, "bob", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, alice.ID)
	enrollStudent(t, db, classroom.ID, bob.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)
	q := quiz.Questions

	// alice 4/4 及格，bob 0/4 不及格
	submitAnswers(t, db, alice.ID, quiz.ID, map[string]interface{}{
		util.FormatUint(q[0].ID): util.FormatUint(q[0].Choices[1].ID),
		util.FormatUint(q[1].ID): []interface{}{
			util.FormatUint(q[1].Choices[0].ID),
			util.FormatUint(q[1].Choices[2].ID),
		},
		util.FormatUint(q[2].ID): "Paris",
		util.FormatUint(q[3].ID): "true",
	})
	submitAnswers(t, db, bob.ID, quiz.ID, map[string]interface{}{
		util.FormatUint(q[0].ID): util.FormatUint(q[0].Choices[0].ID),
	})

	svc := newAnalyticsService(db)
	result, err := svc.PassFailBreakdown(teacher.ID, false)
	require.NoError(t, err)

	require.Len(t, result, 1)
	entry := result[0]
	assert.Equal(t, quiz.ID, entry.QuizID)
	assert.Equal(t, "Unit 1 Review", entry.QuizTitle)
	assert.Equal(t, 1, entry.Passed)
	assert.Equal(t, 1, entry.Failed)

	require.Len(t, entry.ClassroomBreakdown, 1)
	assert.Equal(t, "Grade 3 - Hope", entry.ClassroomBreakdown[0].Classroom)
	assert.Equal(t, 1, entry.ClassroomBreakdown[0].Passed)
	assert.Equal(t, 1, entry.ClassroomBreakdown[0].Failed)
}

func TestPassFailBreakdownScopedToCreator(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	other := seedUser(t, db, "other", model.Teacher)
	classroom := seedClassroom(t, db, teacher.ID)
	seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newAnalyticsService(db)
	result, err := svc.PassFailBreakdown(other.ID, false)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestTypeDistribution(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	classroom := seedClassroom(t, db, teacher.ID)
	seedQuiz(t, db, classroom.ID, teacher.ID)
	seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newAnalyticsService(db)
	result, err := svc.TypeDistribution()
	require.NoError(t, err)

	byType := make(map[string]int64)
	for _, c := range result.PerType {
		byType[c.QuestionType] = c.Count
	}
	assert.EqualValues(t, 2, byType["single"])
	assert.EqualValues(t, 2, byType["multi"])
	assert.EqualValues(t, 2, byType["identification"])
	assert.EqualValues(t, 2, byType["true_false"])

	assert.Len(t, result.Chart.Labels, 4)
	require.Len(t, result.Chart.Datasets, 1)
	assert.Len(t, result.Chart.Datasets[0].Data, 4)
}
