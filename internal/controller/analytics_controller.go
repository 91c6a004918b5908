package controller

import (
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// QuestionTypePerformance godoc
// @Summary 按题型统计答对率
// @Description 从原始作答重算正确性，与提交评分使用同一套规则。教师默认只看自己出的题。
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param classroomId query int false "按班级过滤"
// @Param quizId query int false "按测验过滤"
// @Success 200 {object} util.Response{data=service.QuestionTypePerformanceResult}
// @Router /api/analytics/question-types [get]
func (c *AnalyticsController) QuestionTypePerformance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	filter := repository.ResponseFilter{
		ClassroomID: util.MustParseUint(ctx.Query("classroomId")),
		QuizID:      util.MustParseUint(ctx.Query("quizId")),
	}
	if claims.Role == model.Teacher {
		filter.TeacherID = claims.UserID
	}

	result, err := c.AnalyticsService.QuestionTypePerformance(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// PassFailBreakdown godoc
// @Summary 各测验及格/不及格人数，按班级细分
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.QuizPassFail}
// @Router /api/analytics/pass-fail [get]
func (c *AnalyticsController) PassFailBreakdown(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	result, err := c.AnalyticsService.PassFailBreakdown(claims.UserID, claims.Role == model.Admin)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// TypeDistribution godoc
// @Summary 题库中各题型数量分布
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.TypeDistributionResult}
// @Router /api/analytics/type-distribution [get]
func (c *AnalyticsController) TypeDistribution(ctx *gin.Context) {
	result, err := c.AnalyticsService.TypeDistribution()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
