package routes

import (
	"net/http"

	"ezpresta-backend/config"
	"ezpresta-backend/controllers"
	"ezpresta-backend/models"
	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the wired components the handlers are built from.
type Deps struct {
	Config *config.Config
	Tokens utils.TokenConfig

	Users     repository.UserRepository
	Customers repository.Store[models.Customer]
	Catalog   repository.Store[models.CatalogItem]
	Lookups   repository.Store[models.Lookup]
	Workflows repository.Store[models.Workflow]
	Templates repository.Store[models.ReminderTemplate]

	Orders controllers.OrderService
	Stats  interface {
		controllers.StatsService
		controllers.StatsInvalidator
	}
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	origins := d.Config.CORSOrigins
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.AuthController{Users: d.Users, Tokens: d.Tokens}
	profileController := controllers.ProfileController{Users: d.Users}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(d.Tokens.Secret))
		auth.GET("/me", authController.Me)

		profile := auth.Group("/profile")
		{
			profile.GET("", profileController.GetProfile)
			profile.PUT("", profileController.UpdateProfile)
		}
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(d.Tokens.Secret))
	{
		customerController := controllers.CustomerController{Customers: d.Customers, Stats: d.Stats}
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)
		}

		catalogController := controllers.CatalogController{Catalog: d.Catalog}
		catalog := api.Group("/catalog")
		{
			catalog.POST("", catalogController.CreateItem)
			catalog.GET("", catalogController.GetItems)
			catalog.GET("/:id", catalogController.GetItem)
			catalog.PUT("/:id", catalogController.UpdateItem)
			catalog.DELETE("/:id", catalogController.DeleteItem)
		}

		// Pick lists
		lookupRoutes(api.Group("/categories"), &controllers.LookupController{Lookups: d.Lookups, Kind: models.LookupCategory, Stats: d.Stats})
		lookupRoutes(api.Group("/customer-sources"), &controllers.LookupController{Lookups: d.Lookups, Kind: models.LookupCustomerSource, Stats: d.Stats})
		lookupRoutes(api.Group("/rejection-reasons"), &controllers.LookupController{Lookups: d.Lookups, Kind: models.LookupRejectionReason})

		workflowController := controllers.WorkflowController{Workflows: d.Workflows}
		workflows := api.Group("/workflows")
		{
			workflows.POST("", workflowController.CreateWorkflow)
			workflows.GET("", workflowController.GetWorkflows)
			workflows.GET("/:id", workflowController.GetWorkflow)
			workflows.PUT("/:id", workflowController.UpdateWorkflow)
			workflows.DELETE("/:id", workflowController.DeleteWorkflow)
		}

		orderController := controllers.OrderController{Orders: d.Orders}
		orders := api.Group("/orders")
		{
			orders.POST("/quote", orderController.QuoteOrder)
			orders.POST("", orderController.CreateOrder)
			orders.GET("", orderController.GetOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.PUT("/:id", orderController.UpdateOrder)
			orders.DELETE("/:id", orderController.DeleteOrder)

			orders.POST("/:id/installments/recalculate", orderController.RecalculateInstallments)
			orders.POST("/:id/installments/:number/pay", orderController.PayInstallment)
			orders.POST("/:id/confirm", orderController.ConfirmOrder)
			orders.POST("/:id/cancel", orderController.CancelOrder)

			orders.POST("/:id/workflow", orderController.AttachWorkflow)
			orders.PUT("/:id/tasks/:taskId", orderController.SetTaskDone)
		}

		dashboardController := controllers.DashboardController{Stats: d.Stats}
		api.GET("/dashboard", dashboardController.GetDashboard)
		api.GET("/dashboard/export.xlsx", dashboardController.ExportBilling)

		reminderController := controllers.ReminderController{Templates: d.Templates}
		api.GET("/reminder-template", reminderController.GetReminderTemplate)
		api.PUT("/reminder-template", reminderController.UpdateReminderTemplate)
	}

	return r
}

func lookupRoutes(g *gin.RouterGroup, lc *controllers.LookupController) {
	g.POST("", lc.Create)
	g.GET("", lc.List)
	g.PUT("/:id", lc.Update)
	g.DELETE("/:id", lc.Delete)
}
