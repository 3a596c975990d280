package main

import (
	"context"
	"net/http"

	"placelog-api/internal/config"
	"placelog-api/internal/geofence"
	"placelog-api/internal/handler"
	"placelog-api/internal/metrics"
	"placelog-api/internal/middleware"
	"placelog-api/internal/notify"
	"placelog-api/internal/repository"
	"placelog-api/internal/search"
	"placelog-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	ctx := context.Background()

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot ensure schema")
	}

	m := metrics.New()
	if err := m.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatal().Err(err).Msg("cannot register metrics")
	}

	// Geofence core
	monitor := geofence.NewDeviceMonitor()
	reconciler := geofence.NewReconciler(repo, monitor, m, log.Logger, config.RegionCap, config.RegionRadiusMeters)
	dispatcher := notify.NewDispatcher(log.Logger)
	notifier := geofence.NewArrivalNotifier(repo, dispatcher, m, log.Logger)
	pending := &geofence.PendingPlace{}
	checker := geofence.NewProximityChecker(repo, config.RegionRadiusMeters)

	monitor.OnRegionEntered(func(ev geofence.RegionEntered) {
		if err := notifier.HandleRegionEntered(context.Background(), ev); err != nil {
			log.Error().Err(err).Str("region_id", ev.RegionID).Msg("arrival handling failed")
		}
	})
	monitor.OnMonitoringFailed(reconciler.HandleMonitoringFailed)
	dispatcher.OnTap(func(_, payload string) {
		pending.Set(payload)
	})

	// Derive the initial monitored set on launch.
	if err := reconciler.Reconcile(ctx); err != nil {
		log.Error().Err(err).Msg("initial reconciliation failed")
	}

	// Nearby place provider
	provider, err := search.NewElasticProvider(config.ElasticURL, config.ElasticIndex, config.SearchTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to search provider")
	}

	// Initialize layers
	placeService := service.NewPlaceService(repo, reconciler, log.Logger)
	discoveryService := service.NewDiscoveryService(provider, log.Logger)

	placeHandler := handler.NewPlaceHandler(placeService)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryService)
	geofenceHandler := handler.NewGeofenceHandler(reconciler, monitor)
	notificationHandler := handler.NewNotificationHandler(dispatcher, pending)
	proximityHandler := handler.NewProximityHandler(checker)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log.Logger))
	r.Use(middleware.RateLimit(config.RateLimit, config.RateLimitWindow))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/places", placeHandler.ListPlaces)
	r.POST("/places", placeHandler.SavePlace)
	r.GET("/places/:id", placeHandler.GetPlace)
	r.PUT("/places/:id", placeHandler.UpdateNotes)
	r.DELETE("/places/:id", placeHandler.DeletePlace)

	r.GET("/nearby", discoveryHandler.Nearby)

	r.GET("/regions", geofenceHandler.Regions)
	r.PUT("/authorization", geofenceHandler.SetAuthorization)
	r.POST("/events/region-entered", geofenceHandler.RegionEntered)
	r.POST("/events/monitoring-failed", geofenceHandler.MonitoringFailed)

	r.GET("/notifications", notificationHandler.List)
	r.POST("/notifications/:id/tap", notificationHandler.Tap)
	r.GET("/pending-place", notificationHandler.PendingPlace)

	r.POST("/location/refresh", proximityHandler.Refresh)
	r.GET("/banner", proximityHandler.Banner)
	r.POST("/banner/dismiss", proximityHandler.Dismiss)

	r.Run(config.ServerAddress)
}
