package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	pc *controllers.PropertyController,
	rc *controllers.ReservationController,
	ac *controllers.AvailabilityController,
	prc *controllers.PricingController,
	cc *controllers.CalendarController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		properties := api.Group("/properties")
		{
			properties.POST("", pc.Create)
			properties.GET("/:id", pc.Get)
			properties.PATCH("/:id", pc.Update)

			properties.GET("/:id/reservations", rc.ListByProperty)

			properties.GET("/:id/blocked", ac.ListBlocked)
			properties.POST("/:id/blocked", ac.ManualBlock)
			properties.DELETE("/:id/blocked", ac.ManualUnblock)
			properties.GET("/:id/availability", ac.Validate)

			properties.GET("/:id/quote", prc.Quote)
			properties.PUT("/:id/overrides", prc.SetOverride)
			properties.DELETE("/:id/overrides", prc.RemoveOverride)

			properties.POST("/:id/calendar/import", cc.Import)
			properties.GET("/:id/calendar.ics", cc.Export)
		}

		reservations := api.Group("/reservations")
		{
			reservations.POST("", rc.Create)
			reservations.GET("/:id", rc.Get)
			reservations.POST("/:id/confirm", rc.Confirm)
			reservations.POST("/:id/reject", rc.Reject)
			reservations.POST("/:id/cancel", rc.Cancel)
		}
	}

	return r
}
