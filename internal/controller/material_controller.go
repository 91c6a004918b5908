package controller

import (
	"errors"
	"strconv"

	"school_backend/internal/model"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// Upload godoc
// @Summary 上传班级资料（教师）
// @Tags 资料
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Param title formData string true "资料标题"
// @Param file formData file true "文件"
// @Success 201 {object} util.Response{data=model.EducationMaterial}
// @Router /api/classrooms/{id}/materials [post]
func (c *MaterialController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	material, err := c.MaterialService.Upload(
		ctx.Request.Context(),
		util.MustParseUint(ctx.Param("id")),
		claims.UserID,
		claims.Role == model.Admin,
		title,
		file,
	)
	if err != nil {
		handleClassroomError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// List godoc
// @Summary 班级资料列表
// @Tags 资料
// @Produce json
// @Security BearerAuth
// @Param id path int true "班级 ID"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=object}
// @Router /api/classrooms/{id}/materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	materials, total, err := c.MaterialService.ListByClassroom(util.MustParseUint(ctx.Param("id")), claims, page, pageSize)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"items": materials, "total": total})
}

// Delete godoc
// @Summary 删除资料
// @Tags 资料
// @Produce json
// @Security BearerAuth
// @Param id path int true "资料 ID"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.MaterialService.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role == model.Admin); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.NotFound(ctx)
		}
		return
	}
	util.Success(ctx, nil)
}
