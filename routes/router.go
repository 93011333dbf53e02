package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cppla/civicreport/config"
	"github.com/cppla/civicreport/controllers"
	"github.com/cppla/civicreport/middleware"
	"github.com/cppla/civicreport/utils"
	"github.com/cppla/civicreport/web"
)

// Handlers are the controllers mounted by SetupRouter.
type Handlers struct {
	Submissions *controllers.SubmissionController
	Admin       *controllers.AdminController
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, h Handlers) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, false))
	} else {
		utils.Sugar.Warnf("gin access log disabled: %v", err)
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.PrometheusMiddleware())

	r.SetHTMLTemplate(web.Templates())
	// Local sink output; unused when media goes to the bucket
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/", page("index.html"))
	r.GET("/report", page("report.html"))
	r.GET("/unauthorized", page(middleware.UnauthorizedTemplate))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	allow := middleware.SharedSecret(cfg.AdminSecretKey)

	r.GET("/admin", middleware.AdminPageGate(allow), h.Admin.Dashboard)

	api := r.Group("/api")
	api.POST("/submit", middleware.RateLimitMiddleware(cfg.RateLimitPerMinute), h.Submissions.Submit)

	adminAPI := api.Group("/admin")
	adminAPI.Use(middleware.AdminAPIGate(allow))
	adminAPI.GET("/submissions", h.Admin.ListSubmissions)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, "api route not found")
			return
		}
		ctx.String(http.StatusNotFound, "404 page not found")
	})

	return r
}

func page(name string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.HTML(http.StatusOK, name, nil)
	}
}
