package router

import (
	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/interfaces/http/handler"
	"github.com/perfhub/backend/internal/interfaces/http/middleware"
)

// Handlers collects the handlers the route table wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Department *handler.DepartmentHandler
	Indicator  *handler.IndicatorHandler
	Score      *handler.ScoreHandler
	Analytics  *handler.AnalyticsHandler
	System     *handler.SystemHandler

	// AuthLimiter, when set, throttles credential endpoints (login, refresh)
	// more aggressively than the global rate limit.
	AuthLimiter *middleware.RateLimiter
}

// BuildGroups assembles the API route table. Authentication is applied
// engine-wide by the JWT middleware; role guards sit on the mutating routes
// that need more than a valid token.
func BuildGroups(h Handlers) []*DomainGroup {
	adminOnly := middleware.RequireRoles(identity.RoleAdmin)
	managerOrAdmin := middleware.RequireRoles(identity.RoleManager, identity.RoleAdmin)

	auth := NewDomainGroup("auth", "/auth")
	if h.AuthLimiter != nil {
		throttle := middleware.AuthRateLimit(h.AuthLimiter)
		auth.POST("/login", throttle, h.Auth.Login).
			POST("/refresh", throttle, h.Auth.RefreshToken)
	} else {
		auth.POST("/login", h.Auth.Login).
			POST("/refresh", h.Auth.RefreshToken)
	}
	auth.POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.GetCurrentUser).
		POST("/change-password", h.Auth.ChangePassword)

	users := NewDomainGroup("users", "/users")
	users.GET("", h.User.List).
		GET("/:id", h.User.Get).
		POST("", adminOnly, h.User.Create).
		PUT("/:id", adminOnly, h.User.Update).
		POST("/:id/activate", adminOnly, h.User.Activate).
		POST("/:id/deactivate", adminOnly, h.User.Deactivate)

	departments := NewDomainGroup("departments", "/departments")
	departments.GET("", h.Department.List).
		GET("/:id", h.Department.Get).
		POST("", adminOnly, h.Department.Create).
		PUT("/:id", adminOnly, h.Department.Update).
		POST("/:id/activate", adminOnly, h.Department.Activate).
		POST("/:id/deactivate", adminOnly, h.Department.Deactivate)

	indicators := NewDomainGroup("indicators", "/indicators")
	indicators.GET("", h.Indicator.List).
		GET("/allocation", h.Indicator.Allocation).
		GET("/:id", h.Indicator.Get).
		POST("", adminOnly, h.Indicator.Create).
		PUT("/:id", adminOnly, h.Indicator.Update).
		POST("/:id/activate", adminOnly, h.Indicator.Activate).
		POST("/:id/deactivate", adminOnly, h.Indicator.Deactivate)

	scores := NewDomainGroup("scores", "/scores")
	scores.GET("", h.Score.List).
		GET("/:id", h.Score.Get).
		POST("", h.Score.Submit).
		PUT("/:id", h.Score.Update).
		POST("/:id/verify", managerOrAdmin, h.Score.Verify)

	analytics := NewDomainGroup("analytics", "/analytics")
	analytics.GET("/summary", h.Analytics.Summary).
		GET("/performers", h.Analytics.Performers).
		GET("/subjects/:id/breakdown", h.Analytics.Breakdown).
		GET("/subjects/:id/trend", h.Analytics.Trend)

	system := NewDomainGroup("system", "/system")
	system.GET("/ping", h.System.Ping).
		GET("/info", h.System.GetSystemInfo)

	return []*DomainGroup{auth, users, departments, indicators, scores, analytics, system}
}
