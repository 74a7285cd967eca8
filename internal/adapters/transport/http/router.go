package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpmw "github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/config"
)

// NewRouter wires middleware and every route. reg receives the HTTP metrics
// and is served on /metrics.
func NewRouter(cfg *config.Config, h *Handler, reg *prometheus.Registry, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(log))
	router.Use(httpmw.NewMetrics(reg).Handler())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
			},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.SetHTMLTemplate(loadTemplates())

	router.GET("/", h.index)
	router.GET("/menu", h.menu)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/refresh", h.refresh)

	mail := router.Group("/mail")
	mail.POST("/send-mail", h.sendMail)
	mail.GET("/validate/:token", h.validate)

	products := router.Group("/products", httpmw.RequireToken(h.auth, model.ClassAccess))
	products.POST("", h.listProducts)
	products.POST("/add", h.addProduct)
	products.PUT("/update", h.updateProduct)
	products.DELETE("/delete", h.deleteProduct)
	products.GET("/changelog", h.changeLog)
	products.GET("/:id", h.getProduct)

	return router
}
