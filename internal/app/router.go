package app

import (
	"academy_backend/docs"
	"academy_backend/internal/access"
	"academy_backend/internal/config"
	"academy_backend/internal/middleware"
	"academy_backend/internal/model"
	"academy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 公共路由（无需登录，登录后内容更丰富）
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.POST("/register", c.auth.RegisterClient)
		public.POST("/login", c.auth.LoginClient)
		public.POST("/admin/login", c.auth.LoginStaff)

		public.GET("/categories", c.catalog.ListCategories)
		public.GET("/instructors", c.catalog.ListInstructors)
		public.GET("/instructors/:id", c.catalog.GetInstructor)

		// 课程详情按访问者身份裁剪内容
		public.GET("/courses", c.course.List)
		public.GET("/courses/:urlName", c.course.Get)
		public.GET("/reviews/:courseId", c.review.GetByCourse)
		public.GET("/comments", c.comment.ListForLesson)
	}

	// 外部转码服务回调
	router.POST("/api/callbacks/transcode", c.video.TranscodeCallback)

	// 2. 学员路由（需要学员身份）
	client := router.Group("/api")
	client.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.account))
	{
		client.GET("/me", c.auth.Me)

		// 每条路由按策略表授权，控制器再做行级细化
		own := client.Group("")
		own.Use(middleware.ClientMiddleware())
		{
			own.PUT("/profile", middleware.Authorize(access.Accounts, access.Update), c.user.UpdateOwnProfile)
			own.PUT("/profile/password", middleware.Authorize(access.Accounts, access.Update), c.user.ChangeOwnPassword)

			own.POST("/participations", middleware.Authorize(access.Participants, access.Create), c.participation.Enroll)
			own.GET("/participations", middleware.Authorize(access.Participants, access.Read), c.participation.ListOwn)
			own.GET("/participations/:id", middleware.Authorize(access.Participants, access.Read), c.participation.GetOwn)

			own.GET("/exams/:id", middleware.Authorize(access.Exams, access.Read), c.exam.GetForTaking)
			own.POST("/submissions", middleware.Authorize(access.Submissions, access.Create), c.submission.Submit)
			own.GET("/submissions", middleware.Authorize(access.Submissions, access.Read), c.submission.ListOwn)
			own.GET("/submissions/:id", middleware.Authorize(access.Submissions, access.Read), c.submission.GetOwn)

			own.POST("/comments", middleware.Authorize(access.Comments, access.Create), c.comment.Post)
			own.POST("/reviews", middleware.Authorize(access.Reviews, access.Create), c.review.Submit)
			own.POST("/reviews/:courseId/helpful", c.review.MarkHelpful)

			own.GET("/videos/:id", middleware.Authorize(access.Videos, access.Read), c.video.Get)
			own.GET("/videos/:id/playback", middleware.Authorize(access.Videos, access.Read), c.video.Playback)
		}

		client.DELETE("/comments/:id", middleware.Authorize(access.Comments, access.Delete), c.comment.Delete)
	}

	// 3. 管理端路由
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))

	// 内容生产：超管/经理/制作
	production := admin.Group("")
	production.Use(middleware.RoleMiddleware(model.RoleManager, model.RoleProduction))
	{
		production.POST("/courses", middleware.Authorize(access.Courses, access.Create), c.course.Create)
		production.PUT("/courses/:id", middleware.Authorize(access.Courses, access.Update), c.course.Update)
		production.DELETE("/courses/:id", middleware.Authorize(access.Courses, access.Delete), c.course.Delete)

		production.POST("/exams", middleware.Authorize(access.Exams, access.Create), c.exam.Create)
		production.GET("/exams", middleware.Authorize(access.Exams, access.Read), c.exam.List)
		production.GET("/exams/:id", middleware.Authorize(access.Exams, access.Read), c.exam.Get)
		production.PUT("/exams/:id", middleware.Authorize(access.Exams, access.Update), c.exam.Update)
		production.DELETE("/exams/:id", middleware.Authorize(access.Exams, access.Delete), c.exam.Delete)

		production.POST("/certificates", middleware.Authorize(access.Certificates, access.Create), c.certificate.Create)
		production.GET("/certificates", middleware.Authorize(access.Certificates, access.Read), c.certificate.List)
		production.GET("/certificates/:id", middleware.Authorize(access.Certificates, access.Read), c.certificate.Get)
		production.PUT("/certificates/:id", middleware.Authorize(access.Certificates, access.Update), c.certificate.Update)
		production.DELETE("/certificates/:id", middleware.Authorize(access.Certificates, access.Delete), c.certificate.Delete)

		production.POST("/videos", middleware.Authorize(access.Videos, access.Create), c.video.Upload)
		production.POST("/videos/chunk", middleware.Authorize(access.Videos, access.Create), c.video.UploadChunk)
		production.GET("/videos/progress/:identifier", middleware.Authorize(access.Videos, access.Read), c.video.GetUploadProgress)
		production.GET("/videos", middleware.Authorize(access.Videos, access.Read), c.video.List)
		production.DELETE("/videos/:id", middleware.Authorize(access.Videos, access.Delete), c.video.Delete)
	}

	// 运营：超管/经理/商务/市场
	operations := admin.Group("")
	operations.Use(middleware.RoleMiddleware(model.RoleManager, model.RoleCommerciale, model.RoleMarketing))
	{
		operations.GET("/participations", middleware.Authorize(access.Participants, access.Read), c.participation.List)
		operations.POST("/participations/:id/payment", middleware.Authorize(access.Participants, access.Update), c.participation.ConfirmPayment)
		operations.POST("/participations/:id/approve", middleware.Authorize(access.Participants, access.Update), c.participation.Approve)
		operations.DELETE("/participations/:id", middleware.Authorize(access.Participants, access.Delete), c.participation.Delete)

		operations.GET("/submissions", middleware.Authorize(access.Submissions, access.Read), c.submission.List)
		operations.POST("/submissions/:id/feedback", middleware.Authorize(access.Submissions, access.Update), c.submission.AddFeedback)

		operations.GET("/comments/pending", middleware.Authorize(access.Comments, access.Read), c.comment.ListPending)
		operations.POST("/comments/:id/approve", middleware.Authorize(access.Comments, access.Update), c.comment.Approve)

		operations.GET("/reviews", middleware.Authorize(access.Reviews, access.Read), c.review.List)
		operations.POST("/courses/:courseId/reviews/moderate", middleware.Authorize(access.Reviews, access.Update), c.review.Moderate)

		operations.GET("/accounts", middleware.Authorize(access.Accounts, access.Read), c.user.ListAccounts)
		operations.PUT("/accounts/:id/status", middleware.Authorize(access.Accounts, access.Update), c.user.SetAccountStatus)
	}

	// 账号与基础资料管理：仅超管
	superadmin := admin.Group("")
	superadmin.Use(middleware.RoleMiddleware(model.RoleSuperAdmin))
	{
		superadmin.POST("/categories", middleware.Authorize(access.Categories, access.Create), c.catalog.CreateCategory)
		superadmin.PUT("/categories/:id", middleware.Authorize(access.Categories, access.Update), c.catalog.UpdateCategory)
		superadmin.DELETE("/categories/:id", middleware.Authorize(access.Categories, access.Delete), c.catalog.DeleteCategory)

		superadmin.POST("/instructors", middleware.Authorize(access.Instructors, access.Create), c.catalog.CreateInstructor)
		superadmin.PUT("/instructors/:id", middleware.Authorize(access.Instructors, access.Update), c.catalog.UpdateInstructor)
		superadmin.DELETE("/instructors/:id", middleware.Authorize(access.Instructors, access.Delete), c.catalog.DeleteInstructor)

		superadmin.POST("/staff", middleware.Authorize(access.Users, access.Create), c.auth.RegisterStaff)
		superadmin.GET("/staff", middleware.Authorize(access.Users, access.Read), c.user.ListStaff)
		superadmin.PUT("/staff/:id/roles", middleware.Authorize(access.Users, access.Update), c.user.UpdateStaffRoles)
		superadmin.PUT("/staff/:id/disabled", middleware.Authorize(access.Users, access.Update), c.user.SetStaffDisabled)
		superadmin.DELETE("/staff/:id", middleware.Authorize(access.Users, access.Delete), c.user.DeleteStaff)
		superadmin.DELETE("/accounts/:id", middleware.Authorize(access.Accounts, access.Delete), c.user.DeleteAccount)
	}
}
