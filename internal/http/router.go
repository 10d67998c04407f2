package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"
	"time"

	intconfig "transport-crm/internal/config"
	h "transport-crm/internal/http/handlers"
	"transport-crm/internal/http/middleware"
	"transport-crm/internal/repositories"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     env.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
			AllowCredentials: true,
			MaxAge:           24 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	repo := repositories.BookingRepository{DB: db}
	secret := []byte(env.JWTSecret)

	bookingH := h.BookingHandler{Repo: repo}
	exportH := h.ExportHandler{Repo: repo}
	voucherH := h.VoucherHandler{Repo: repo}
	authH := h.AuthHandler{DB: db, Secret: secret}
	systemH := h.SystemHandler{DB: db}

	api := r.Group("/api")
	{
		api.GET("/health", systemH.Health)
		api.GET("/db-check", systemH.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", authH.Login)
		auth.POST("/register", authH.Register)

		bookings := api.Group("/bookings", middleware.RequireAuth(secret))
		bookings.GET("", bookingH.List)
		bookings.POST("", bookingH.Create)
		bookings.GET("/export", exportH.ExportCSV)
		bookings.GET("/:id", bookingH.Get)
		bookings.PUT("/:id", bookingH.Update)
		bookings.GET("/:id/voucher", voucherH.Voucher)
		bookings.GET("/:id/pdf", voucherH.PDF)

		admin := bookings.Group("", middleware.RequireAdmin())
		admin.DELETE("/:id", bookingH.Delete)
		admin.PUT("/:id/payment-status", bookingH.SetPaymentStatus)
	}

	return r
}
