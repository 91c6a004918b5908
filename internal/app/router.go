package app

import (
	"school_backend/docs"
	"school_backend/internal/config"
	"school_backend/internal/middleware"
	"school_backend/internal/model"
	"school_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerCommonRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerCommonRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users/me", c.user.GetProfile)
	rg.PUT("/users/me", c.user.UpdateProfile)

	rg.GET("/classrooms", c.classroom.List)
	rg.GET("/classrooms/:id", c.classroom.Get)
	rg.GET("/classrooms/:id/students", c.classroom.ListStudents)
	rg.GET("/classrooms/:id/materials", c.material.List)

	rg.GET("/quizzes", c.quiz.List)
	rg.GET("/quizzes/:id", c.quiz.Get)
	rg.GET("/responses/:id", c.response.GetResponse)
	rg.GET("/students/:id/scores", c.response.ListStudentScores)

	rg.GET("/events", c.event.List)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/quizzes/:id/submit", c.response.Submit)
		student.GET("/quizzes/:id/score", c.response.GetMyScore)
		student.GET("/scores/me", c.response.ListMyScores)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/classrooms", c.classroom.Create)
		teacher.PUT("/classrooms/:id", c.classroom.Update)
		teacher.DELETE("/classrooms/:id", c.classroom.Delete)
		teacher.POST("/classrooms/:id/students", c.classroom.Enroll)
		teacher.DELETE("/classrooms/:id/students/:studentId", c.classroom.Unenroll)
		teacher.GET("/classrooms/:id/scores", c.response.ListClassroomScores)
		teacher.POST("/classrooms/:id/materials", c.material.Upload)
		teacher.DELETE("/materials/:id", c.material.Delete)

		teacher.POST("/quizzes", c.quiz.Create)
		teacher.PUT("/quizzes/:id", c.quiz.Update)
		teacher.DELETE("/quizzes/:id", c.quiz.Delete)
		teacher.GET("/quizzes/:id/scores", c.response.ListQuizScores)
		teacher.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		teacher.PUT("/questions/:questionId", c.quiz.UpdateQuestion)
		teacher.DELETE("/questions/:questionId", c.quiz.DeleteQuestion)

		teacher.GET("/analytics/question-types", c.analytics.QuestionTypePerformance)
		teacher.GET("/analytics/pass-fail", c.analytics.PassFailBreakdown)
		teacher.GET("/analytics/type-distribution", c.analytics.TypeDistribution)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/admin/users", c.user.ListByRole)

		admin.POST("/events", c.event.Create)
		admin.PUT("/events/:id", c.event.Update)
		admin.DELETE("/events/:id", c.event.Delete)
	}
}
