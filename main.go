package main

import (
	"fmt"
	"log"

	"ezpresta-backend/cache"
	"ezpresta-backend/config"
	"ezpresta-backend/models"
	"ezpresta-backend/notify"
	"ezpresta-backend/repository"
	"ezpresta-backend/routes"
	"ezpresta-backend/services"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			log.Fatalf("register validators: %v", err)
		}
	}
}

func main() {
	cfg := config.Load()

	if err := config.ConnectDB(cfg); err != nil {
		log.Fatal(err)
	}
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CatalogItem{},
		&models.Lookup{},
		&models.Workflow{},
		&models.Order{},
		&models.OrderLocation{},
		&models.OrderFee{},
		&models.OrderDiscount{},
		&models.OrderInstallment{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var statsCache cache.StatsCache = cache.Noop{}
	if rdb := config.ConnectRedis(cfg); rdb != nil {
		statsCache = cache.NewRedisStatsCache(rdb, cfg.StatsCacheTTL)
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.TwilioAccountSID != "" {
		notifier = notify.NewTwilioNotifier(notify.TwilioConfig{
			AccountSID:     cfg.TwilioAccountSID,
			AuthToken:      cfg.TwilioAuthToken,
			PhoneNumber:    cfg.TwilioPhoneNumber,
			WhatsAppNumber: cfg.TwilioWhatsAppNumber,
		})
	} else {
		log.Println("[NOTIFY] TWILIO_ACCOUNT_SID not set, messages are only logged")
	}

	secret := cfg.JWTSecret
	if secret == "" {
		log.Println("JWT_SECRET not set, using a key valid until restart")
		secret = utils.GenerateJWTSecret()
	}

	db := config.DB
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)
	customers := repository.NewStore[models.Customer](db)
	catalog := repository.NewStore[models.CatalogItem](db)
	lookups := repository.NewStore[models.Lookup](db)
	workflows := repository.NewStore[models.Workflow](db)

	orderService := services.NewOrderService(services.OrderDeps{
		Orders:    orders,
		Catalog:   catalog,
		Customers: customers,
		Workflows: workflows,
		Lookups:   lookups,
		Users:     users,
		Notifier:  notifier,
		Cache:     statsCache,
	})
	statsService := services.NewStatsService(orders, customers, lookups, statsCache)

	reminderService := services.NewReminderService(orders, repository.NewReminderRepository(db), notifier, cfg.ReminderDaysAhead)
	if err := reminderService.StartScheduler(cfg.ReminderCron); err != nil {
		log.Fatalf("reminder scheduler: %v", err)
	}
	defer reminderService.Stop()

	r := routes.SetupRouter(routes.Deps{
		Config:    cfg,
		Tokens:    utils.TokenConfig{Secret: secret, Expiry: cfg.JWTExpiry},
		Users:     users,
		Customers: customers,
		Catalog:   catalog,
		Lookups:   lookups,
		Workflows: workflows,
		Templates: repository.NewStore[models.ReminderTemplate](db),
		Orders:    orderService,
		Stats:     statsService,
	})
	printRoutes(r)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
