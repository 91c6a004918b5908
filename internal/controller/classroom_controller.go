package controller

import (
	"errors"
	"strconv"

	"school_backend/internal/model"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassroomController struct {
	ClassroomService *service.ClassroomService
}

func NewClassroomController(classroomService *service.ClassroomService) *ClassroomController {
	return &ClassroomController{ClassroomService: classroomService}
}

func handleClassroomError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrClassroomNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, 404, "user not found")
	case errors.Is(err, util.ErrNotAStudent):
		util.BadRequest(ctx, "only students can be enrolled")
	default:
		util.LogInternalError(ctx, err)
	}
}

// Create godoc
// @Summary 创建班级（教师/管理员）
// @Tags 班级
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateClassroomRequest true "班级信息"
// @Success 201 {object} util.Response{data=model.Classroom}
// @Router /api/classrooms [post]
func (c *ClassroomController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	classroom, err := c.ClassroomService.Create(claims.UserID, &req)
	if err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Created(ctx, classroom)
}

// Get godoc
// @Summary 班级详情
// @Tags 班级
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Router /api/classrooms/{id} [get]
func (c *ClassroomController) Get(ctx *gin.Context) {
	classroom, err := c.ClassroomService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// List godoc
// @Summary 列出当前用户可见的班级
// @Tags 班级
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=[]model.Classroom}
// @Router /api/classrooms [get]
func (c *ClassroomController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	classrooms, err := c.ClassroomService.ListForUser(claims, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, classrooms)
}

// Update godoc
// @Summary 更新班级
// @Tags 班级
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Param body body service.UpdateClassroomRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Router /api/classrooms/{id} [put]
func (c *ClassroomController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.UpdateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	classroom, err := c.ClassroomService.Update(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role == model.Admin, &req)
	if err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// Delete godoc
// @Summary 删除班级
// @Tags 班级
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Success 200 {object} util.Response
// @Router /api/classrooms/{id} [delete]
func (c *ClassroomController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.ClassroomService.Delete(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role == model.Admin); err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type enrollRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
}

// Enroll godoc
// @Summary 将学生加入班级
// @Tags 班级
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Param body body enrollRequest true "学生 ID"
// @Success 200 {object} util.Response
// @Router /api/classrooms/{id}/students [post]
func (c *ClassroomController) Enroll(ctx *gin.Context) {
	var req enrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ClassroomService.Enroll(util.MustParseUint(ctx.Param("id")), req.StudentID); err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Unenroll godoc
// @Summary 将学生移出班级
// @Tags 班级
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Param studentId path int true "学生 ID"
// @Success 200 {object} util.Response
// @Router /api/classrooms/{id}/students/{studentId} [delete]
func (c *ClassroomController) Unenroll(ctx *gin.Context) {
	if err := c.ClassroomService.Unenroll(util.MustParseUint(ctx.Param("id")), util.MustParseUint(ctx.Param("studentId"))); err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListStudents godoc
// @Summary 班级学生名单
// @Tags 班级
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/classrooms/{id}/students [get]
func (c *ClassroomController) ListStudents(ctx *gin.Context) {
	students, err := c.ClassroomService.ListStudents(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Success(ctx, students)
}
