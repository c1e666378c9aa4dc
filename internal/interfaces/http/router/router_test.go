package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("system", "/system")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/system/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("scores", "/scores")
		assert.Equal(t, "scores", g.Name())
		assert.Equal(t, "/scores", g.Prefix())
	})

	t.Run("registers routes for each method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("scores", "/scores")
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g.GET("", ok).
			POST("", ok).
			PUT("/:id", ok).
			PATCH("/:id", ok).
			DELETE("/:id", ok)

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		for _, tt := range []struct {
			method string
			path   string
		}{
			{"GET", "/api/v1/scores"},
			{"POST", "/api/v1/scores"},
			{"PUT", "/api/v1/scores/abc"},
			{"PATCH", "/api/v1/scores/abc"},
			{"DELETE", "/api/v1/scores/abc"},
		} {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("scores", "/scores")

		g.Use(func(c *gin.Context) {
			c.Header("X-Guarded", "yes")
			c.Next()
		})
		g.GET("", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/scores", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "yes", w.Header().Get("X-Guarded"))
	})

	t.Run("applies per-route middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("scores", "/scores")

		deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
		g.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.POST("/:id/verify", deny, func(c *gin.Context) { c.Status(http.StatusOK) })

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/scores", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest("POST", "/api/v1/scores/abc/verify", nil)
		w = httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("analytics", "/analytics")

		subjects := g.Group("subjects", "/subjects")
		subjects.GET("/:id/trend", func(c *gin.Context) {
			c.String(http.StatusOK, "trend")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/analytics/subjects/abc/trend", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "trend", w.Body.String())
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	scores := NewDomainGroup("scores", "/scores")
	scores.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "scores")
	})

	indicators := NewDomainGroup("indicators", "/indicators")
	indicators.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "indicators")
	})

	r.Register(scores).Register(indicators)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/scores", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "scores", w.Body.String())

	req = httptest.NewRequest("GET", "/api/v1/indicators", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "indicators", w.Body.String())
}

func TestBuildGroups(t *testing.T) {
	groups := BuildGroups(Handlers{})

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name())
	}

	assert.Equal(t, []string{
		"auth", "users", "departments", "indicators", "scores", "analytics", "system",
	}, names)
}
