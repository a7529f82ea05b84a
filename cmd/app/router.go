package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/api/controllers"
	"trailhub/internal/config"
	"trailhub/internal/infra"
	"trailhub/pkg/middleware"
	"trailhub/pkg/utils"
)

type RouterParams struct {
	fx.In

	Config      *config.Config
	Log         *zap.Logger
	DB          *gorm.DB
	Auth        *middleware.Authenticator
	RateLimiter *middleware.RateLimiter

	Account   *controllers.AccountController
	Location  *controllers.LocationController
	Interest  *controllers.InterestController
	Trip      *controllers.TripController
	Planning  *controllers.PlanningController
	Community *controllers.CommunityController
	Safety    *controllers.SafetyController
	Dashboard *controllers.DashboardController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if p.Config.Server.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.RegisterValidators()

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware(p.Log))
	r.Use(middleware.AccessLog(p.Log))
	r.Use(middleware.Recovery(p.Log))
	r.Use(middleware.CORSMiddleware(p.Config.Server.CORSOrigins))
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", healthHandler(p.DB))

	RegisterRoutes(r.Group("/api"), p)

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := infra.Ping(ctx, db); err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		utils.RespondSuccess(c, gin.H{"status": "ok", "database": "ok"}, "ok")
	}
}

func RegisterRoutes(api *gin.RouterGroup, p RouterParams) {
	auth := p.Auth.JWTAuthMiddleware()
	optional := p.Auth.OptionalAuth()
	admin := middleware.RoleMiddleware(middleware.RoleAdmin)

	authGroup := api.Group("/auth")
	authGroup.Use(p.RateLimiter.Middleware())
	authGroup.POST("/register", p.Account.Register)
	authGroup.POST("/login", p.Account.Login)
	authGroup.POST("/logout", auth, p.Account.Logout)
	authGroup.POST("/forgot-password", p.Account.ForgotPassword)
	authGroup.POST("/reset-password", p.Account.ResetPassword)

	me := api.Group("/users/me", auth)
	me.GET("", p.Account.Profile)
	me.PUT("", p.Account.UpdateProfile)
	me.GET("/preferences", p.Account.GetPreferences)
	me.PUT("/preferences", p.Account.UpdatePreferences)
	me.GET("/interests", p.Interest.List)
	me.POST("/interests", p.Interest.Add)
	me.DELETE("/interests/:id", p.Interest.Remove)
	me.GET("/emergency-contacts", p.Safety.ListContacts)
	me.POST("/emergency-contacts", p.Safety.AddContact)
	me.PUT("/emergency-contacts/:id", p.Safety.UpdateContact)
	me.DELETE("/emergency-contacts/:id", p.Safety.DeleteContact)
	me.POST("/medical-reports", p.Safety.UploadReport)
	me.GET("/medical-reports", p.Safety.ListReports)
	me.GET("/medical-reports/:id/download", p.Safety.DownloadReport)
	me.DELETE("/medical-reports/:id", p.Safety.DeleteReport)

	api.GET("/interests/options", p.Interest.Options)
	api.GET("/buddies", auth, p.Interest.Buddies)

	locations := api.Group("/locations")
	locations.GET("", p.Location.ListLocations)
	locations.GET("/nearby", p.Location.NearbyLocations)
	locations.GET("/:id", p.Location.GetLocation)
	locations.GET("/:id/reviews", p.Location.ListReviews)
	locations.POST("/:id/reviews", auth, p.Location.CreateReview)
	locations.POST("", auth, admin, p.Location.CreateLocation)
	locations.PUT("/:id", auth, admin, p.Location.UpdateLocation)
	locations.DELETE("/:id", auth, admin, p.Location.DeleteLocation)
	locations.POST("/:id/weather", auth, admin, p.Location.RefreshWeather)
	api.DELETE("/reviews/:id", auth, p.Location.DeleteReview)

	api.GET("/adventure/suggestions", auth, p.Location.Suggestions)

	trips := api.Group("/trips")
	trips.GET("/public", p.Trip.ListPublicTrips)
	trips.GET("/:id", optional, p.Trip.GetTrip)
	trips.GET("/:id/itinerary", optional, p.Trip.ListItinerary)
	trips.POST("", auth, p.Trip.CreateTrip)
	trips.GET("", auth, p.Trip.ListMyTrips)
	trips.PUT("/:id", auth, p.Trip.UpdateTrip)
	trips.DELETE("/:id", auth, p.Trip.DeleteTrip)
	trips.POST("/:id/itinerary", auth, p.Trip.AddItineraryItem)
	trips.PUT("/:id/itinerary/:itemId", auth, p.Trip.UpdateItineraryItem)
	trips.DELETE("/:id/itinerary/:itemId", auth, p.Trip.DeleteItineraryItem)

	budget := api.Group("/budget", auth)
	budget.POST("", p.Planning.EstimateBudget)
	budget.GET("", p.Planning.ListBudgets)
	budget.GET("/latest", p.Planning.LatestBudget)
	budget.GET("/latest/pdf", p.Planning.ExportBudgetPDF)
	budget.GET("/latest/xlsx", p.Planning.ExportBudgetXLSX)

	packing := api.Group("/packing")
	packing.POST("", p.Planning.GeneratePackingList)
	packing.GET("/items", p.Planning.PackingItems)
	packing.GET("/checklist/pdf", p.Planning.ChecklistPDF)

	spots := api.Group("/spots")
	spots.GET("", p.Community.ListSpots)
	spots.POST("", auth, p.Community.SubmitSpot)

	events := api.Group("/events")
	events.GET("", p.Community.ListEvents)
	events.GET("/filter", p.Community.FilterEvents)
	events.GET("/nearby", p.Community.NearbyEvents)
	events.POST("", auth, p.Community.SuggestEvent)

	notifications := api.Group("/notifications", auth)
	notifications.GET("", p.Community.ListNotifications)
	notifications.GET("/unread-count", p.Community.UnreadCount)
	notifications.POST("/read-all", p.Community.MarkAllRead)
	notifications.POST("/:id/read", p.Community.MarkRead)

	emergency := api.Group("/emergency/directory")
	emergency.GET("", p.Safety.Directory)
	emergency.POST("", auth, admin, p.Safety.AddDirectoryEntry)
	emergency.DELETE("/:id", auth, admin, p.Safety.RemoveDirectoryEntry)

	firstAid := api.Group("/first-aid", auth)
	firstAid.POST("/kits", p.Safety.CreateKit)
	firstAid.GET("/kits", p.Safety.ListKits)
	firstAid.GET("/kits/:id", p.Safety.GetKit)
	firstAid.DELETE("/kits/:id", p.Safety.DeleteKit)
	firstAid.POST("/kits/:id/items", p.Safety.AddKitItem)
	firstAid.PATCH("/items/:id/packed", p.Safety.SetPacked)
	firstAid.DELETE("/items/:id", p.Safety.DeleteKitItem)
	firstAid.GET("/expiring", p.Safety.ExpiringItems)

	adminGroup := api.Group("/admin", auth, admin)
	adminGroup.GET("/dashboard", p.Dashboard.GetDashboard)
}
