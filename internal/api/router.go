package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/alerts"
	iauth "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/auth"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/handlers"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/middleware"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/realtime"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/services"
)

// Deps bundles everything the router mounts.
type Deps struct {
	JWT           *iauth.JWTService
	Login         *iauth.LoginService
	Hub           *realtime.Hub
	Aggregator    *alerts.Aggregator
	Bookings      *services.BookingService
	Invoices      *services.InvoiceService
	Notifications *services.NotificationService
	Messages      *services.MessageService
	Customers     *services.CustomerService
	FollowUps     *services.FollowUpService
	Fleet         *services.FleetService
}

func (d Deps) validate() error {
	switch {
	case d.JWT == nil:
		return fmt.Errorf("jwt service must be provided")
	case d.Login == nil:
		return fmt.Errorf("login service must be provided")
	case d.Aggregator == nil:
		return fmt.Errorf("alert aggregator must be provided")
	case d.Bookings == nil:
		return fmt.Errorf("booking service must be provided")
	case d.Invoices == nil:
		return fmt.Errorf("invoice service must be provided")
	case d.Notifications == nil:
		return fmt.Errorf("notification service must be provided")
	case d.Messages == nil:
		return fmt.Errorf("message service must be provided")
	case d.Customers == nil:
		return fmt.Errorf("customer service must be provided")
	case d.FollowUps == nil:
		return fmt.Errorf("followup service must be provided")
	case d.Fleet == nil:
		return fmt.Errorf("fleet service must be provided")
	}
	return nil
}

// NewRouter builds the Gin engine, wires middleware and registers routes.
func NewRouter(deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// Public surface
	r.GET("/health", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.Login)
	r.POST("/api/auth/login", authHandler.Login)

	messageHandler := handlers.NewMessageHandler(deps.Messages, deps.Notifications)
	r.POST("/api/messages", messageHandler.Create)

	// Everything else requires a bearer token.
	api := r.Group("/api")
	api.Use(middleware.Auth(deps.JWT))

	alertHandler := handlers.NewAlertHandler(deps.Aggregator, deps.Hub, deps.JWT)
	api.GET("/alerts", alertHandler.Snapshot)
	api.POST("/alerts/refresh", alertHandler.Refresh)
	// The websocket carries its token as a query parameter, outside the group.
	r.GET("/api/alerts/stream", alertHandler.Stream)

	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	bookings := api.Group("/bookings")
	{
		bookings.GET("", bookingHandler.List)
		bookings.POST("", bookingHandler.Create)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.PATCH("/:id/status", bookingHandler.SetStatus)
		bookings.POST("/:id/convert", bookingHandler.ConvertQuote)
		bookings.POST("/:id/quote", bookingHandler.SendQuote)
		bookings.DELETE("/:id", bookingHandler.Delete)
	}

	invoiceHandler := handlers.NewInvoiceHandler(deps.Invoices)
	invoices := api.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.PATCH("/:id", invoiceHandler.Update)
		invoices.POST("/:id/payment", invoiceHandler.SetPaymentStatus)
	}

	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)
	notifications := api.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
		notifications.POST("/read_all", notificationHandler.MarkAllRead)
		notifications.DELETE("/read", notificationHandler.DeleteRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	api.GET("/messages", messageHandler.List)
	api.DELETE("/messages/:id", messageHandler.Delete)

	customerHandler := handlers.NewCustomerHandler(deps.Customers)
	api.GET("/customers", customerHandler.List)
	api.GET("/customers/:id", customerHandler.Get)

	followUpHandler := handlers.NewFollowUpHandler(deps.FollowUps)
	followUps := api.Group("/followups")
	{
		followUps.GET("", followUpHandler.List)
		followUps.POST("", followUpHandler.Create)
		followUps.POST("/:id/done", followUpHandler.MarkDone)
	}

	fleetHandler := handlers.NewFleetHandler(deps.Fleet)
	api.GET("/drivers", fleetHandler.Drivers)
	api.GET("/vehicles", fleetHandler.Vehicles)

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
