package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwchoi684/rg-manager/config"
	"github.com/jwchoi684/rg-manager/handlers"
	"github.com/jwchoi684/rg-manager/middlewares"
	"github.com/jwchoi684/rg-manager/notify"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config, notifier *notify.Notifier) {
	auth := handlers.NewAuthHandler(cfg.JWTSecret, notifier.Kakao())
	std := handlers.NewStudentHandler()
	cls := handlers.NewClassHandler()
	att := handlers.NewAttendanceHandler(notifier)
	comp := handlers.NewCompetitionHandler()
	usr := handlers.NewUserHandler()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
	})

	// ===== Public auth =====
	e.POST("/auth/signup", auth.Signup)
	e.POST("/auth/login", auth.Login)
	e.POST("/auth/kakao", auth.KakaoLogin)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Authenticated =====
	api := e.Group("", authMW)

	api.GET("/auth/me", auth.Me)
	api.PUT("/auth/me/consent", auth.UpdateConsent)

	api.GET("/students", std.List)
	api.GET("/students/:id", std.GetByID)
	api.POST("/students", std.Create)
	api.PUT("/students/:id", std.Update)
	api.DELETE("/students/:id", std.Delete)

	api.GET("/classes", cls.List)
	api.PUT("/classes/reorder", cls.Reorder)
	api.GET("/classes/:id", cls.GetByID)
	api.POST("/classes", cls.Create)
	api.PUT("/classes/:id", cls.Update)
	api.DELETE("/classes/:id", cls.Delete)

	api.GET("/attendance", att.List)
	api.POST("/attendance", att.Create)
	api.POST("/attendance/check", att.CheckClass)
	api.DELETE("/attendance", att.DeleteByDateAndClass)
	api.DELETE("/attendance/:id", att.Delete)

	api.GET("/competitions", comp.List)
	api.GET("/competitions/:id", comp.GetByID)
	api.POST("/competitions", comp.Create)
	api.PUT("/competitions/:id", comp.Update)
	api.DELETE("/competitions/:id", comp.Delete)
	api.GET("/competitions/:id/students", comp.Students)
	api.POST("/competitions/:id/students", comp.AddStudent)
	api.DELETE("/competitions/:id/students/:studentId", comp.RemoveStudent)
	api.PUT("/competitions/:id/students/:studentId/events", comp.UpdateStudentEvents)
	api.PUT("/competitions/:id/students/:studentId/paid", comp.UpdateStudentPaid)

	// ===== Admin =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))
	admin.GET("/users", usr.List)
	admin.PUT("/users/:id/role", usr.UpdateRole)
	admin.DELETE("/users/:id", usr.Delete)
	admin.POST("/users/transfer", usr.Transfer)
	admin.GET("/logs", usr.Logs)
}
