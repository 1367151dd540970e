package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sayohat/backend/docs"
	"github.com/sayohat/backend/internal/database"
	"github.com/sayohat/backend/internal/handlers"
	mW "github.com/sayohat/backend/internal/middleware"
	"github.com/sayohat/backend/internal/services"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Travel Agency Back Office API
// @version 1.0
// @description API for ticket sales, split payments and agency reporting
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env
	viper.ReadInConfig()        // read .env file

	viper.SetEnvPrefix("")

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")

	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Travel Agency Back Office API"
	docs.SwaggerInfo.Description = "API for ticket sales, split payments and agency reporting"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize services
	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	feed := services.NewChangeFeed(redisClient)
	notifier := services.NewLogNotifier()

	reconciliationService := services.NewReconciliationService(db, feed, notifier)
	ticketService := services.NewTicketService(db, redisClient, feed, reconciliationService)
	prepaidService := services.NewPrepaidService(db)
	expenseService := services.NewExpenseService(db)
	analyticsService := services.NewAnalyticsService(db)
	agentService := services.NewAgentService(db)
	receiptService := services.NewReceiptService(db, redisClient)
	receiptHandler := handlers.NewReceiptHandler(receiptService)

	// Invalidate the cached ticket list when other instances record payments
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go feed.Watch(watchCtx)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Static file server for airline logos
	r.Handle("/static/airline-logos/*", http.StripPrefix("/static/airline-logos/",
		mW.StaticFileServer("./static/airline-logos")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/login", agentService.Login)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/agents/me", agentService.GetAccount)

			r.Get("/tickets", ticketService.ListTickets)
			r.Post("/tickets", ticketService.CreateTicket)
			r.Get("/tickets/{ticketId}", ticketService.GetTicket)

			r.Get("/tickets/{ticketId}/payments", reconciliationService.ListTicketPayments)
			r.Post("/tickets/{ticketId}/payments", reconciliationService.SubmitTicketPayment)
			r.Post("/payments/preview", reconciliationService.PreviewPayment)

			r.Post("/tickets/{ticketId}/receipt", receiptHandler.GenerateReceipt)
			r.Post("/receipts/redeem", receiptHandler.RedeemReceipt)

			r.Get("/prepaid-clients", prepaidService.ListPrepaidClients)
			r.Post("/prepaid-clients", prepaidService.CreatePrepaidClient)

			r.Get("/expenses", expenseService.ListExpenses)
			r.Post("/expenses", expenseService.CreateExpense)
			r.Get("/consumptions", expenseService.ListConsumptions)
			r.Post("/consumptions", expenseService.CreateConsumption)

			r.Get("/analytics/summary", analyticsService.GetSummary)
			r.Get("/analytics/agents", analyticsService.GetAgentPerformance)
			r.Get("/analytics/monthly", analyticsService.GetMonthlyRevenue)
			r.Get("/analytics/suppliers", analyticsService.GetSupplierRevenue)

			// Admin-only operator management
			r.Group(func(r chi.Router) {
				r.Use(mW.AdminOnly)

				r.Get("/agents", agentService.ListAgents)
				r.Post("/agents", agentService.CreateAgent)
			})
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
