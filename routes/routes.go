package routes

import (
	"time"

	"tripdesk/handlers"
	"tripdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers routes are built from.
type HandlerBundle struct {
	FlightUsers *handlers.FlightUsersHandler
	Websites    *handlers.WebsitesHandler
	Health      *handlers.HealthHandler
	Users       *handlers.UserHandler
	Items       *handlers.ItemHandler
	Tickets     *handlers.TicketHandler
}

// RegisterFlightUserRoutes registers the partner aggregation endpoints. Reads
// are public dashboard data; the destructive delete requires authentication.
func RegisterFlightUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/flight-users")
	{
		api.GET("/all", hb.FlightUsers.GetAllFlightUsers)
		api.GET("/:partnerId", hb.FlightUsers.GetFlightUsersByPartner)
		api.DELETE("/:partnerId/:bookingId", middleware.JWTAuthMiddleware(), hb.FlightUsers.DeleteFlightUserBooking)
	}
}

// RegisterWebsiteRoutes registers partner registry configuration endpoints.
func RegisterWebsiteRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/websites")
	{
		api.GET("/config", hb.Websites.GetWebsitesConfig)
		api.PATCH("/:partnerId/status", middleware.JWTAuthMiddleware(), hb.Websites.UpdateWebsiteStatus)
	}
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterUserHandler)
		api.POST("/login", hb.Users.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/id/:id", hb.Users.GetUserByIDHandler)
		api.GET("/email/:email", hb.Users.GetUserByEmailHandler)
		api.PUT("/update/:id", hb.Users.UpdateUserHandler)
		api.DELETE("/delete/:id", hb.Users.DeleteUserHandler)
		api.DELETE("/revoke/:id", hb.Users.RevokeUserAuthTokenHandler)
		api.GET("", middleware.RequireAdmin(), hb.Users.GetAllUsersHandler)
	}
}

// RegisterItemRoutes registers the billable item catalogue endpoints.
func RegisterItemRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/items")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Items.CreateItemHandler)
		api.GET("", hb.Items.GetAllItemsHandler)
		api.GET("/:id", hb.Items.GetItemHandler)
		api.PUT("/:id", hb.Items.UpdateItemHandler)
		api.DELETE("/:id", middleware.RequireAdmin(), hb.Items.DeleteItemHandler)
	}
}

// RegisterTicketRoutes registers ticket request CRM endpoints.
func RegisterTicketRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/ticket-requests")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Tickets.CreateTicketRequestHandler)
		api.GET("", hb.Tickets.GetAllTicketRequestsHandler)
		api.GET("/:id", hb.Tickets.GetTicketRequestHandler)
		api.PUT("/:id", hb.Tickets.UpdateTicketRequestHandler)
		api.DELETE("/:id", hb.Tickets.DeleteTicketRequestHandler)
		api.GET("/:id/statuses", hb.Tickets.ListTicketStatusesHandler)
		api.POST("/:id/charge", hb.Tickets.ChargeTicketRequestHandler)
	}
}

// RegisterHealthRoute registers the liveness endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/health", hb.Health.GetHealth)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterFlightUserRoutes(r, hb)
	RegisterWebsiteRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterItemRoutes(r, hb)
	RegisterTicketRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
