package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/vantagecrm/crm-backend/internal/http/handlers"
	"github.com/vantagecrm/crm-backend/internal/http/middleware"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log                *logger.Logger
	ServiceName        string
	HealthHandler      *handlers.HealthHandler
	CustomerHandler    *handlers.CustomerHandler
	ContactHandler     *handlers.ContactHandler
	OpportunityHandler *handlers.OpportunityHandler
	ActivityHandler    *handlers.ActivityHandler
	ProductHandler     *handlers.ProductHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")

	customers := api.Group("/customers")
	{
		customers.GET("", cfg.CustomerHandler.ListCustomers)
		customers.GET("/search", cfg.CustomerHandler.SearchCustomers)
		customers.GET("/:id", cfg.CustomerHandler.GetCustomer)
		customers.POST("", cfg.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", cfg.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", cfg.CustomerHandler.DeleteCustomer)
	}

	contacts := api.Group("/contacts")
	{
		contacts.GET("", cfg.ContactHandler.ListContacts)
		contacts.GET("/primary", cfg.ContactHandler.ListPrimaryContacts)
		contacts.GET("/search", cfg.ContactHandler.SearchContacts)
		contacts.GET("/email", cfg.ContactHandler.GetContactByEmail)
		contacts.GET("/customer/:customerId", cfg.ContactHandler.ListContactsByCustomer)
		contacts.GET("/:id", cfg.ContactHandler.GetContact)
		contacts.POST("", cfg.ContactHandler.CreateContact)
		contacts.PUT("/:id", cfg.ContactHandler.UpdateContact)
		contacts.DELETE("/:id", cfg.ContactHandler.DeleteContact)
	}

	opportunities := api.Group("/opportunities")
	{
		opportunities.GET("", cfg.OpportunityHandler.ListOpportunities)
		opportunities.GET("/closing-date-range", cfg.OpportunityHandler.ListOpportunitiesClosingBetween)
		opportunities.GET("/high-value", cfg.OpportunityHandler.ListHighValueOpportunities)
		opportunities.GET("/customer/:customerId", cfg.OpportunityHandler.ListOpportunitiesByCustomer)
		opportunities.GET("/status/:status", cfg.OpportunityHandler.ListOpportunitiesByStatus)
		opportunities.GET("/stage/:stage", cfg.OpportunityHandler.ListOpportunitiesByStage)
		opportunities.GET("/value/status/:status", cfg.OpportunityHandler.TotalValueByStatus)
		opportunities.GET("/:id", cfg.OpportunityHandler.GetOpportunity)
		opportunities.POST("", cfg.OpportunityHandler.CreateOpportunity)
		opportunities.PUT("/:id", cfg.OpportunityHandler.UpdateOpportunity)
		opportunities.DELETE("/:id", cfg.OpportunityHandler.DeleteOpportunity)
	}

	activities := api.Group("/activities")
	{
		activities.GET("", cfg.ActivityHandler.ListActivities)
		activities.GET("/date-range", cfg.ActivityHandler.ListActivitiesScheduledBetween)
		activities.GET("/recent", cfg.ActivityHandler.ListRecentActivities)
		activities.GET("/upcoming", cfg.ActivityHandler.ListUpcomingActivities)
		activities.GET("/customer/:customerId", cfg.ActivityHandler.ListActivitiesByCustomer)
		activities.GET("/contact/:contactId", cfg.ActivityHandler.ListActivitiesByContact)
		activities.GET("/opportunity/:opportunityId", cfg.ActivityHandler.ListActivitiesByOpportunity)
		activities.GET("/type/:type", cfg.ActivityHandler.ListActivitiesByType)
		activities.GET("/status/:status", cfg.ActivityHandler.ListActivitiesByStatus)
		activities.GET("/:id", cfg.ActivityHandler.GetActivity)
		activities.POST("", cfg.ActivityHandler.CreateActivity)
		activities.POST("/:id/complete", cfg.ActivityHandler.CompleteActivity)
		activities.PUT("/:id", cfg.ActivityHandler.UpdateActivity)
		activities.DELETE("/:id", cfg.ActivityHandler.DeleteActivity)
	}

	products := api.Group("/products")
	{
		products.GET("", cfg.ProductHandler.ListProducts)
		products.GET("/search", cfg.ProductHandler.SearchProducts)
		products.GET("/code/:code", cfg.ProductHandler.GetProductByCode)
		products.GET("/category/:category", cfg.ProductHandler.ListProductsByCategory)
		products.GET("/status/:status", cfg.ProductHandler.ListProductsByStatus)
		products.GET("/price/max", cfg.ProductHandler.ListProductsUnderPrice)
		products.GET("/price/range", cfg.ProductHandler.ListProductsInPriceRange)
		products.GET("/:id", cfg.ProductHandler.GetProduct)
		products.POST("", cfg.ProductHandler.CreateProduct)
		products.PUT("/:id", cfg.ProductHandler.UpdateProduct)
		products.PATCH("/:id/status", cfg.ProductHandler.UpdateProductStatus)
		products.DELETE("/:id", cfg.ProductHandler.DeleteProduct)
	}

	return router
}
