package routes

import (
	"github.com/asaplab/asap/internal/app/controllers"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth       *controllers.AuthController
	Research   *controllers.ResearchController
	Unit       *controllers.UnitController
	Enrollment *controllers.EnrollmentController
	Manage     *controllers.ManageController
	Profile    *controllers.ProfileController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", c.Health.Ping)
	router.GET("/health", c.Health.Health)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	signup := v1.Group("/signup")
	{
		signup.POST("/student", c.Auth.SignupStudent)
		signup.POST("/prof", c.Auth.SignupProf)
	}
	v1.GET("/activate/:uid/:token", c.Auth.Activate)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.POST("/logout", c.Auth.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/research/all", c.Research.Search)
		authenticated.GET("/research/info/:id", c.Research.Detail)

		authenticated.GET("/mypage", c.Profile.MyPage)
		authenticated.PUT("/mypage", c.Profile.UpdateProfile)
		authenticated.PUT("/mypage/changepassword", c.Auth.ChangePassword)
	}

	// --- Professor routes ---
	prof := authenticated.Group("")
	prof.Use(authMiddleware.RequireProfessor())
	{
		prof.GET("/research/create", c.Research.ListMine)
		prof.POST("/research/create", c.Research.Create)
		prof.PUT("/research/modify/:id", c.Research.Update)
		prof.DELETE("/research/delete/:id", c.Research.Delete)

		prof.POST("/research/:id", c.Unit.Create)
		prof.PUT("/research/:id/modify/:unit_id", c.Unit.Update)
		prof.DELETE("/research/:id/delete/:unit_id", c.Unit.Delete)

		prof.GET("/prof/manage", c.Research.ListMine)
		prof.GET("/prof/manage/:unit_id", c.Manage.Roster)
		prof.POST("/prof/manage/:unit_id",
			middleware.ValidateRequest[dto.RecordOutcomesRequest](),
			c.Manage.RecordOutcomes,
		)
	}

	// --- Student routes ---
	student := authenticated.Group("")
	student.Use(authMiddleware.RequireStudent())
	{
		student.GET("/research/enroll", c.Enrollment.Catalog)
		student.POST("/research/enroll/:id", c.Enrollment.Enroll)
		student.POST("/research/cancel/:id", c.Enrollment.Cancel)
		student.GET("/student/records", c.Enrollment.MyRecords)
	}
}
