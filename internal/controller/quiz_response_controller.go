package controller

import (
	"errors"

	"school_backend/internal/grading"
	"school_backend/internal/model"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizResponseController struct {
	ResponseService *service.QuizResponseService
}

func NewQuizResponseController(responseService *service.QuizResponseService) *QuizResponseController {
	return &QuizResponseController{ResponseService: responseService}
}

// Submit godoc
// @Summary 提交测验作答（学生）
// @Description 提交即评分。作答中出现未知题目或形态不合法的答案会整单拒绝；每名学生每份测验只能提交一次。
// @Tags 作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验 ID"
// @Param body body service.SubmitRequest true "作答内容，键为题目 ID"
// @Success 201 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response "作答不合法"
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizResponseController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ResponseService.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		var unknownErr *grading.UnknownQuestionError
		var malformedErr *grading.MalformedAnswerError
		switch {
		case errors.Is(err, util.ErrQuizAlreadySubmitted):
			util.Error(ctx, 409, err.Error())
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotAStudent), errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx)
		case errors.As(err, &unknownErr), errors.As(err, &malformedErr):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, result)
}

// GetMyScore godoc
// @Summary 查看自己在某测验的成绩（学生）
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验 ID"
// @Success 200 {object} util.Response{data=model.QuizScore}
// @Failure 404 {object} util.Response "尚未提交"
// @Router /api/quizzes/{id}/score [get]
func (c *QuizResponseController) GetMyScore(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	score, err := c.ResponseService.GetMyScore(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, score)
}

// ListMyScores godoc
// @Summary 自己的全部成绩（学生）
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizScore}
// @Router /api/scores/me [get]
func (c *QuizResponseController) ListMyScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	scores, err := c.ResponseService.ListMyScores(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// ListStudentScores godoc
// @Summary 查看指定学生的全部成绩（本人/家长/管理员）
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "学生 ID"
// @Success 200 {object} util.Response{data=[]model.QuizScore}
// @Failure 403 {object} util.Response
// @Router /api/students/{id}/scores [get]
func (c *QuizResponseController) ListStudentScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	scores, err := c.ResponseService.ListScoresForStudent(util.MustParseUint(ctx.Param("id")), claims)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrNotAStudent):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, scores)
}

// ListQuizScores godoc
// @Summary 某测验全部成绩（出题教师/管理员）
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验 ID"
// @Success 200 {object} util.Response{data=[]model.QuizScore}
// @Router /api/quizzes/{id}/scores [get]
func (c *QuizResponseController) ListQuizScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	scores, err := c.ResponseService.ListScoresForQuiz(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role == model.Admin)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// ListClassroomScores godoc
// @Summary 某班级全部成绩（任课教师/管理员）
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Success 200 {object} util.Response{data=[]model.QuizScore}
// @Router /api/classrooms/{id}/scores [get]
func (c *QuizResponseController) ListClassroomScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	scores, err := c.ResponseService.ListScoresForClassroom(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role == model.Admin)
	if err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// GetResponse godoc
// @Summary 查看一次提交的原始作答
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答 ID"
// @Success 200 {object} util.Response{data=model.StudentResponse}
// @Router /api/responses/{id} [get]
func (c *QuizResponseController) GetResponse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	response, err := c.ResponseService.GetResponse(util.MustParseUint(ctx.Param("id")), claims)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.NotFound(ctx)
		}
		return
	}
	util.Success(ctx, response)
}
