package controller

import (
	"strconv"

	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// Create godoc
// @Summary 创建校园活动（教师/管理员）
// @Tags 活动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.EventRequest true "活动信息"
// @Success 201 {object} util.Response{data=model.SchoolEvent}
// @Router /api/events [post]
func (c *EventController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.EventService.Create(claims.UserID, &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, event)
}

// List godoc
// @Summary 活动列表
// @Tags 活动
// @Produce json
// @Security BearerAuth
// @Param upcoming query bool false "只返回未结束的活动"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/events [get]
func (c *EventController) List(ctx *gin.Context) {
	if ctx.Query("upcoming") == "true" {
		limit, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
		events, err := c.EventService.ListUpcoming(limit)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, events)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	events, total, err := c.EventService.List(page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": events, "total": total})
}

// Update godoc
// @Summary 更新活动
// @Tags 活动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "活动 ID"
// @Param body body service.EventRequest true "活动信息"
// @Success 200 {object} util.Response{data=model.SchoolEvent}
// @Router /api/events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	var req service.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.EventService.Update(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, event)
}

// Delete godoc
// @Summary 删除活动
// @Tags 活动
// @Produce json
// @Security BearerAuth
// @Param id path int true "活动 ID"
// @Success 200 {object} util.Response
// @Router /api/events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	if err := c.EventService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
