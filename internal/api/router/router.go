package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ray8844/saida-de-campo/config"
	"github.com/ray8844/saida-de-campo/internal/api/handler"
	"github.com/ray8844/saida-de-campo/internal/api/middleware"
	"github.com/ray8844/saida-de-campo/pkg/jwt"
	"github.com/ray8844/saida-de-campo/pkg/metrics"
	"github.com/ray8844/saida-de-campo/pkg/redis"
)

const roleAdmin = "admin"

// Deps are the collaborators the router wires into middleware.
type Deps struct {
	JWT      *jwt.Manager
	Redis    *redis.Client // optional
	Recorder metrics.Recorder
	Gatherer prometheus.Gatherer // optional; enables /metrics
	Logger   *zap.Logger
}

// Setup builds the gin engine.
func Setup(cfg *config.Config, h *handler.Handler, deps Deps) *gin.Engine {
	r := gin.New()

	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NewNop()
	}

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.BodyLimitMiB > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimitMiB << 20))
	}

	// ── health and metrics ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(deps.JWT))
	admin := middleware.RoleAuth(roleAdmin)
	{
		groups := v1.Group("/groups")
		{
			groups.GET("", h.Group.ListGroups)
			groups.GET("/:id", h.Group.GetGroup)
			groups.POST("", admin, h.Group.CreateGroup)
			groups.PUT("/:id", admin, h.Group.UpdateGroup)
			groups.DELETE("/:id", admin, h.Group.DeleteGroup)
		}

		brothers := v1.Group("/brothers")
		{
			brothers.GET("", h.Brother.ListBrothers)
			brothers.GET("/:id", h.Brother.GetBrother)
			brothers.POST("", admin, h.Brother.CreateBrother)
			brothers.POST("/import", admin, h.Brother.ImportBrothers)
			brothers.PUT("/:id", admin, h.Brother.UpdateBrother)
			brothers.DELETE("/:id", admin, h.Brother.DeleteBrother)
		}

		territories := v1.Group("/territories")
		{
			territories.GET("", h.Territory.ListTerritories)
			territories.GET("/:id", h.Territory.GetTerritory)
			territories.POST("", admin, h.Territory.CreateTerritory)
			territories.PUT("/:id", admin, h.Territory.UpdateTerritory)
			territories.DELETE("/:id", admin, h.Territory.DeleteTerritory)
		}

		outings := v1.Group("/outings")
		{
			outings.POST("/generate", admin,
				middleware.RateLimit(deps.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window, deps.Logger),
				h.Outing.Generate)
			outings.GET("", h.Outing.GetOuting)
			outings.DELETE("", admin, h.Outing.DeleteOuting)
		}

		assignments := v1.Group("/assignments")
		{
			assignments.GET("", h.Outing.ListAssignments)
			assignments.PUT("/:id/status", admin, h.Outing.UpdateStatus)
			assignments.PUT("/:id/pair", admin, h.Outing.UpdatePair)
			assignments.DELETE("/:id", admin, h.Outing.DeleteAssignment)
		}

		v1.GET("/reports/stats", h.Report.Stats)
		v1.GET("/calendar/groups/:file", h.Calendar.GroupFeed)
	}

	return r
}
