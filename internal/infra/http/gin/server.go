package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/thienvyma/tagiangecolodge/internal/infra/config"
	"github.com/thienvyma/tagiangecolodge/internal/infra/obs"
)

type AvailabilityHTTP interface {
	BookedRanges(c *gin.Context)
}

type BookingHTTP interface {
	Submit(c *gin.Context)
	List(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
}

type RoomsHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type GalleryHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Reorder(c *gin.Context)
	BulkUpload(c *gin.Context)
	Upload(c *gin.Context)
}

type BlogHTTP interface {
	List(c *gin.Context)
	BySlug(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Agent(c *gin.Context)
	AgentSave(c *gin.Context)
}

type ContentHTTP interface {
	All(c *gin.Context)
	Update(c *gin.Context)
}

type AuthHTTP interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

type Handlers struct {
	Availability AvailabilityHTTP
	Booking      BookingHTTP
	Rooms        RoomsHTTP
	Gallery      GalleryHTTP
	Blog         BlogHTTP
	Content      ContentHTTP
	Auth         AuthHTTP
	RequireAdmin gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Availability != nil {
		api.GET("/availability", h.Availability.BookedRanges)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Submit)
	}
	if h.Rooms != nil {
		api.GET("/rooms", h.Rooms.List)
		api.GET("/rooms/:id", h.Rooms.Get)
	}
	if h.Gallery != nil {
		api.GET("/gallery", h.Gallery.List)
	}
	if h.Blog != nil {
		api.GET("/blog", h.Blog.List)
		api.GET("/blog/:slug", h.Blog.BySlug)
	}
	if h.Content != nil {
		api.GET("/content", h.Content.All)
	}

	admin := api.Group("/admin")
	if h.Auth != nil {
		admin.POST("/auth/login", h.Auth.Login)
	}
	if h.RequireAdmin != nil {
		admin.Use(h.RequireAdmin)
	}
	if h.Auth != nil {
		admin.POST("/auth/logout", h.Auth.Logout)
		admin.GET("/auth/me", h.Auth.Me)
	}
	if h.Booking != nil {
		admin.GET("/bookings", h.Booking.List)
		admin.POST("/bookings/:id/confirm", h.Booking.Confirm)
		admin.POST("/bookings/:id/cancel", h.Booking.Cancel)
	}
	if h.Rooms != nil {
		admin.POST("/rooms", h.Rooms.Create)
		admin.PUT("/rooms/:id", h.Rooms.Update)
		admin.DELETE("/rooms/:id", h.Rooms.Delete)
	}
	if h.Gallery != nil {
		admin.POST("/gallery", h.Gallery.Create)
		admin.PUT("/gallery/reorder", h.Gallery.Reorder)
		admin.PUT("/gallery/:id", h.Gallery.Update)
		admin.DELETE("/gallery/:id", h.Gallery.Delete)
		admin.POST("/gallery/bulk", h.Gallery.BulkUpload)
		admin.POST("/uploads", h.Gallery.Upload)
	}
	if h.Blog != nil {
		admin.POST("/blog", h.Blog.Create)
		admin.PUT("/blog/:id", h.Blog.Update)
		admin.DELETE("/blog/:id", h.Blog.Delete)
		admin.POST("/blog/agent", h.Blog.Agent)
		admin.POST("/blog/agent/save", h.Blog.AgentSave)
	}
	if h.Content != nil {
		admin.PUT("/content/:section", h.Content.Update)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) > 0 {
		c.AllowOrigins = cfg.CORSOrigins
		c.AllowCredentials = true
	} else {
		c.AllowOrigins = []string{"*"}
	}
	return c
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
