package main

import (
	"context"                      // context package is needed for Redis operations
	"log"                          // log package is needed for logging
	"settleup/internal/api"        // Custom package for API handlers
	"settleup/internal/config"     // Custom package for configuration
	"settleup/internal/ledger"     // Custom package for the ledger service
	"settleup/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Ledger service over the shared DB handle
	svc := ledger.NewService(db)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/user", api.RegisterHandler(db))            // Registration endpoint
	r.GET("/user", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Ledger routes (protected by JWT)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// Group management
	apiGroup.POST("/groups", api.CreateGroupHandler(db))           // Create group endpoint
	apiGroup.GET("/groups", api.ListGroupsHandler(db))             // List groups endpoint
	apiGroup.GET("/groups/:id", api.GetGroupHandler(db))           // Get group endpoint
	apiGroup.DELETE("/groups/:id", api.DeleteGroupHandler(db))     // Delete group endpoint
	apiGroup.POST("/groups/:id/members", api.AddMemberHandler(db)) // Add member endpoint

	// Expenses
	apiGroup.GET("/expenses", api.ListExpensesHandler(svc))                      // List expenses endpoint
	apiGroup.GET("/expenses/:id", api.GetExpenseHandler(svc))                    // Get expense endpoint
	apiGroup.POST("/expenses", api.AddExpenseHandler(svc, redisClient))          // Record expense endpoint
	apiGroup.DELETE("/expenses/:id", api.DeleteExpenseHandler(svc, redisClient)) // Delete expense endpoint

	// Splits
	apiGroup.GET("/splits/user/:userId", api.SplitsByUserHandler(svc))                             // Splits by user endpoint
	apiGroup.GET("/splits/expense/:expenseId", api.SplitsByExpenseHandler(svc))                    // Splits by expense endpoint
	apiGroup.GET("/splits/user/:userId/expense/:expenseId", api.SplitByUserAndExpenseHandler(svc)) // Split by user and expense
	apiGroup.GET("/splits/pending/group/:groupId", api.PendingSplitsHandler(svc, redisClient))     // Pending splits endpoint
	apiGroup.PUT("/splits/:splitId/mark-paid", api.MarkSplitPaidHandler(svc, redisClient))         // Mark split paid endpoint
	apiGroup.PUT("/splits/:splitId/mark-settled", api.MarkSplitSettledHandler(svc, redisClient))   // Mark split settled endpoint
	apiGroup.PUT("/splits/:splitId/amount", api.UpdateSplitAmountHandler(svc, redisClient))        // Update split amount endpoint
	apiGroup.DELETE("/splits/:splitId", api.DeleteSplitHandler(svc, redisClient))                  // Delete split endpoint

	// Balances
	apiGroup.GET("/balance/user/:userId/group/:groupId", api.GroupBalanceHandler(svc, redisClient)) // Group balance endpoint
	apiGroup.GET("/balance/total-owed/user/:userId", api.TotalOwedHandler(svc, redisClient))        // Total owed endpoint

	// Reports (protected, admin only)
	reportGroup := r.Group("/reports")
	reportGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	reportGroup.GET("/summary", api.SummaryHandler(db, svc))            // Data summary endpoint
	reportGroup.GET("/user-balances", api.UserBalancesHandler(db, svc)) // Per-user balances endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
