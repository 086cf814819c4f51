package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/modules/catalog/contenttype"
	"github.com/pageforge/core/internal/modules/catalog/sectiontype"
	"github.com/pageforge/core/internal/modules/catalog/sessiontype"
	"github.com/pageforge/core/internal/modules/content/page"
	"github.com/pageforge/core/internal/modules/content/post"
	"github.com/pageforge/core/internal/modules/content/section"
	"github.com/pageforge/core/internal/modules/render"
	"github.com/pageforge/core/internal/modules/storage/media"
	"github.com/pageforge/core/internal/modules/system/settings"
	"github.com/pageforge/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "pageforge-core",
		"version": "1.0.0",
	}

	// Uploaded files
	r.Static("/uploads", a.cfg.Paths.Uploads)

	// Shared services
	pageSvc := page.NewService(db)
	settingsSvc := settings.NewService(db)

	// Public pages at the site root
	root := r.Group("")
	renderHandler := render.NewHandler(pageSvc, settingsSvc)
	renderHandler.RegisterRoutes(root)

	// Admin API
	api := r.Group("/api")

	api.GET("", func(c *gin.Context) { c.JSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.JSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptime := time.Since(processStart)
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptime.Milliseconds(),
			"humanize":  humanizeDuration(uptime),
		})
	})

	// Content
	page.NewHandler(pageSvc).RegisterRoutes(api)
	section.NewHandler(section.NewService(db)).RegisterRoutes(api)
	post.NewHandler(post.NewService(db)).RegisterRoutes(api)

	// Catalogs
	contenttype.NewHandler(contenttype.NewService(db)).RegisterRoutes(api)
	sectiontype.NewHandler(sectiontype.NewService(db)).RegisterRoutes(api)
	sessiontype.NewHandler(sessiontype.NewService(db)).RegisterRoutes(api)

	// Media
	mediaSvc := media.NewService(db, a.cfg.Paths.Uploads, a.logger)
	media.NewHandler(mediaSvc).RegisterRoutes(api)

	// Settings
	settings.NewHandler(settingsSvc).RegisterRoutes(api)

	// Rendering extras
	renderHandler.RegisterAPIRoutes(api)
	render.NewMarkdownHandler().RegisterRoutes(api)
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}
