package controller

import (
	"errors"

	"school_backend/internal/model"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func handleQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrClassroomNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx)
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// Create godoc
// @Summary 创建测验（教师）
// @Description 创建测验及其题目。选择题必须有正确选项，主观题和判断题必须有标准答案。
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateQuizRequest true "测验内容"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "题目定义不合法"
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(claims.UserID, claims.Role == model.Admin, &req)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// Get godoc
// @Summary 测验详情
// @Description 学生视角不返回答案字段
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验 ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var quiz *model.Quiz
	var err error
	if claims.Role == model.Student {
		quiz, err = c.QuizService.GetForStudent(id, claims.UserID)
	} else {
		quiz, err = c.QuizService.Get(id)
	}
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// List godoc
// @Summary 列出测验
// @Description 学生返回所在班级的测验并标注是否已提交；教师返回自己创建的
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param classroomId query int false "按班级过滤"
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if classroomID := util.MustParseUint(ctx.Query("classroomId")); classroomID > 0 {
		quizzes, err := c.QuizService.ListByClassroom(classroomID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, quizzes)
		return
	}

	if claims.Role == model.Student {
		items, err := c.QuizService.ListForStudent(claims.UserID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, items)
		return
	}

	quizzes, err := c.QuizService.ListByCreator(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Update godoc
// @Summary 更新测验基础信息
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验 ID"
// @Param body body service.UpdateQuizRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.UpdateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role == model.Admin, &req)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary 删除测验
// @Description 已有学生提交的测验不允许删除
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验 ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.QuizService.Delete(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role == model.Admin); err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddQuestion godoc
// @Summary 向测验添加题目
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验 ID"
// @Param body body service.QuestionInput true "题目定义"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.AddQuestion(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role == model.Admin, &req)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "题目 ID"
// @Param body body service.QuestionInput true "题目定义"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/questions/{questionId} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(util.MustParseUint(ctx.Param("questionId")), claims.UserID, claims.Role == model.Admin, &req)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "题目 ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{questionId} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.QuizService.DeleteQuestion(util.MustParseUint(ctx.Param("questionId")), claims.UserID, claims.Role == model.Admin); err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
