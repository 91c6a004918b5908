package service

import (
	"testing"

	"school_backend/internal/grading"
	"school_backend/internal/model"
	"school_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitGradesAndPersists(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, student.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newSubmissionService(db, testConfig())

	q := quiz.Questions
	req := &SubmitRequest{Responses: map[string]interface{}{
		util.FormatUint(q[0].ID): util.FormatUint(q[0].Choices[1].ID),
		util.FormatUint(q[1].ID): []interface{}{
			util.FormatUint(q[1].Choices[0].ID),
			util.FormatUint(q[1].Choices[2].ID),
		},
		util.FormatUint(q[2].ID): "  paris ",
		util.FormatUint(q[3].ID): "yes",
	}}

	result, err := svc.Submit(student.ID, quiz.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalScore)
	assert.Equal(t, 4, result.TotalPossible)
	assert.InDelta(t, 100.0, result.PercentageScore, 0.001)
	assert.Equal(t, model.ScoreStatusPassed, result.Status)

	var score model.QuizScore
	require.NoError(t, db.Where("student_response_id = ?", result.ResponseID).First(&score).Error)
	assert.Equal(t, student.ID, score.StudentID)
	assert.Equal(t, quiz.ID, score.QuizID)
	assert.Equal(t, classroom.ID, score.ClassroomID)
	assert.Equal(t, 4, score.TotalScore)

	var response model.StudentResponse
	require.NoError(t, db.First(&response, result.ResponseID).Error)
	assert.Equal(t, classroom.ID, response.ClassroomID)
}

func TestSubmitUnansweredQuestionsCountAgainstTotal(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, student.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newSubmissionService(db, testConfig())

	// 只答对一题，其余留空
	q := quiz.Questions
	req := &SubmitRequest{Responses: map[string]interface{}{
		util.FormatUint(q[0].ID): util.FormatUint(q[0].Choices[1].ID),
	}}

	result, err := svc.Submit(student.ID, quiz.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalScore)
	assert.Equal(t, 4, result.TotalPossible)
	assert.InDelta(t, 25.0, result.PercentageScore, 0.001)
	assert.Equal(t, model.ScoreStatusFailed, result.Status)
}

func TestSubmitRejectsUnknownQuestion(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, student.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newSubmissionService(db, testConfig())

	req := &SubmitRequest{Responses: map[string]interface{}{
		"99999": "whatever",
	}}

	_, err := svc.Submit(student.ID, quiz.ID, req)
	var unknownErr *grading.UnknownQuestionError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "99999", unknownErr.QuestionID)

	// 整单拒绝，不留任何痕迹
	var count int64
	require.NoError(t, db.Model(&model.StudentResponse{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitRejectsMalformedAnswer(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, student.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newSubmissionService(db, testConfig())

	// multi 题给了嵌套对象
	req := &SubmitRequest{Responses: map[string]interface{}{
		util.FormatUint(quiz.Questions[1].ID): map[string]interface{}{"a": 1},
	}}

	_, err := svc.Submit(student.ID, quiz.ID, req)
	var malformedErr *grading.MalformedAnswerError
	require.ErrorAs(t, err, &malformedErr)

	var count int64
	require.NoError(t, db.Model(&model.StudentResponse{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, student.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newSubmissionService(db, testConfig())

	req := &SubmitRequest{Responses: map[string]interface{}{
		util.FormatUint(quiz.Questions[2].ID): "Paris",
	}}

	_, err := svc.Submit(student.ID, quiz.ID, req)
	require.NoError(t, err)

	_, err = svc.Submit(student.ID, quiz.ID, req)
	assert.ErrorIs(t, err, util.ErrQuizAlreadySubmitted)

	var count int64
	require.NoError(t, db.Model(&model.StudentResponse{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitRejectsNonStudent(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	classroom := seedClassroom(t, db, teacher.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newSubmissionService(db, testConfig())

	_, err := svc.Submit(teacher.ID, quiz.ID, &SubmitRequest{Responses: map[string]interface{}{}})
	assert.ErrorIs(t, err, util.ErrNotAStudent)
}

func TestSubmitRejectsUnenrolledStudent(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newSubmissionService(db, testConfig())

	_, err := svc.Submit(student.ID, quiz.ID, &SubmitRequest{Responses: map[string]interface{}{}})
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestSubmitMissingQuizReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "student", model.Student)

	svc := newSubmissionService(db, testConfig())

	_, err := svc.Submit(student.ID, 424242, &SubmitRequest{Responses: map[string]interface{}{}})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestListScoresForStudentPermissions(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	parent := seedUser(t, db, "parent", model.Parent)
	stranger := seedUser(t, db, "stranger", model.Parent)

	student.ParentID = &parent.ID
	require.NoError(t, db.Save(student).Error)

	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, student.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	svc := newSubmissionService(db, testConfig())
	_, err := svc.Submit(student.ID, quiz.ID, &SubmitRequest{Responses: map[string]interface{}{
		util.FormatUint(quiz.Questions[2].ID): "Paris",
	}})
	require.NoError(t, err)

	// 本人
	scores, err := svc.ListScoresForStudent(student.ID, &util.Claims{UserID: student.ID, Role: model.Student})
	require.NoError(t, err)
	assert.Len(t, scores, 1)

	// 关联家长
	scores, err = svc.ListScoresForStudent(student.ID, &util.Claims{UserID: parent.ID, Role: model.Parent})
	require.NoError(t, err)
	assert.Len(t, scores, 1)

	// 无关家长
	_, err = svc.ListScoresForStudent(student.ID, &util.Claims{UserID: stranger.ID, Role: model.Parent})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

// 评分写入失败时作答也必须回滚，不允许出现没有成绩的作答
func TestSubmitAtomicityOnScoreFailure(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, student.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	require.NoError(t, db.Migrator().DropTable(&model.QuizScore{}))

	svc := newSubmissionService(db, testConfig())

	req := &SubmitRequest{Responses: map[string]interface{}{
		util.FormatUint(quiz.Questions[2].ID): "Paris",
	}}

	_, err := svc.Submit(student.ID, quiz.ID, req)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.StudentResponse{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitCustomPassThreshold(t *testing.T) {
	db := setupTestDB(t)
	teacher := seedUser(t, db, "teacher", model.Teacher)
	student := seedUser(t, db, "student", model.Student)
	classroom := seedClassroom(t, db, teacher.ID)
	enrollStudent(t, db, classroom.ID, student.ID)
	quiz := seedQuiz(t, db, classroom.ID, teacher.ID)

	cfg := testConfig()
	cfg.Grading.PassThreshold = 80

	svc := newSubmissionService(db, cfg)

	// 4 题对 3 题 = 75%，低于 80 的及格线
	q := quiz.Questions
	req := &SubmitRequest{Responses: map[string]interface{}{
		util.FormatUint(q[0].ID): util.FormatUint(q[0].Choices[1].ID),
		util.FormatUint(q[1].ID): []interface{}{util.FormatUint(q[1].Choices[0].ID)},
		util.FormatUint(q[2].ID): "Paris",
		util.FormatUint(q[3].ID): true,
	}}

	result, err := svc.Submit(student.ID, quiz.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalScore)
	assert.Equal(t, model.ScoreStatusFailed, result.Status)
}
