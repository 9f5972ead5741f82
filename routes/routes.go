package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tapan2502/Ride-Sharing-Assingement/configs"
	"github.com/tapan2502/Ride-Sharing-Assingement/controllers"
	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
	"github.com/tapan2502/Ride-Sharing-Assingement/middlewares"
	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/payments"
	"github.com/tapan2502/Ride-Sharing-Assingement/pkg/routing"
	"github.com/tapan2502/Ride-Sharing-Assingement/repository"
	"github.com/tapan2502/Ride-Sharing-Assingement/services"
	"github.com/tapan2502/Ride-Sharing-Assingement/ws"
)

// RegisterRoutes wires repositories, services and controllers and mounts
// the /api surface. The hub is passed in so every publisher shares the one
// instance main started.
func RegisterRoutes(r *gin.Engine, cfg *configs.Config, hub *ws.NotificationHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	rideRepo := repository.NewRideRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// External collaborators
	var geocoder routing.Geocoder = routing.StaticGeocoder{}
	if cfg.GeocoderURL != "" {
		geocoder = routing.NewNominatimGeocoder(cfg.GeocoderURL, cfg.UpstreamTimeout)
	}
	estimator := routing.NewEstimator(geocoder)
	gateway := payments.NewMockGateway(cfg.PaymentGatewayURL, cfg.UpstreamTimeout)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	driverSvc := services.NewDriverService(userRepo)
	rideSvc := services.NewRideService(db, rideRepo, userRepo, estimator, hub)
	paymentSvc := services.NewPaymentService(db, rideRepo, paymentRepo, gateway)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	rideCtrl := controllers.NewRideController(rideSvc)
	driverCtrl := controllers.NewDriverController(driverSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	adminCtrl := controllers.NewAdminController(rideSvc)

	api := r.Group("/api")

	authOnly := middlewares.AuthMiddleware(cfg.JWTSecret)
	userOnly := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleUser)
	driverOnly := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleDriver)
	adminOnly := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin)

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.GET("/profile", authOnly, authCtrl.Profile)
	}

	// Rides
	ride := api.Group("/ride")
	{
		ride.POST("/book", userOnly, rideCtrl.Book)
		ride.POST("/cancel/:id", userOnly, rideCtrl.Cancel)
		ride.GET("/current", authOnly, rideCtrl.Current)
		ride.GET("/history", authOnly, rideCtrl.History)

		ride.POST("/accept/:id", driverOnly, rideCtrl.Accept)
		ride.POST("/start/:id", driverOnly, rideCtrl.Start)
		ride.POST("/complete/:id", driverOnly, rideCtrl.Complete)
		ride.GET("/available", driverOnly, rideCtrl.Available)
		ride.GET("/current-driver", driverOnly, rideCtrl.CurrentForDriver)

		ride.GET("/all", adminOnly, rideCtrl.All)
	}

	// Payments
	payment := api.Group("/payment")
	{
		payment.POST("/initiate/:id", userOnly, paymentCtrl.Initiate)
		payment.POST("/confirm", userOnly, paymentCtrl.Confirm)
		payment.GET("/history", adminOnly, paymentCtrl.History)
	}

	// Drivers
	driver := api.Group("/driver")
	{
		driver.GET("/available", userOnly, driverCtrl.Available)
		driver.POST("/update-availability", driverOnly, driverCtrl.UpdateAvailability)
	}

	// Admin
	admin := api.Group("/admin", adminOnly)
	{
		admin.GET("/rides", adminCtrl.AllRides)
		admin.POST("/assign-driver/:rideId", adminCtrl.AssignDriver)
	}

	// Realtime notifications
	r.GET("/ws/notifications", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
