package handler

import (
	"github.com/centime/centime-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, importLimiter *middleware.RateLimiter, transactionHandler *TransactionHandler, categoryHandler *CategoryHandler, ruleHandler *RuleHandler, budgetHandler *BudgetHandler, dashboardHandler *DashboardHandler, transferHandler *TransferHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Categorization rule routes
	rules := api.Group("/rules")
	rules.GET("", ruleHandler.GetRules)
	rules.POST("", ruleHandler.CreateRule)
	rules.DELETE("/:id", ruleHandler.DeleteRule)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.UpsertBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/progress", budgetHandler.GetProgress)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/categories", dashboardHandler.GetCategoryStats)
	dashboard.GET("/trend", dashboardHandler.GetTrend)
	dashboard.GET("/category-trend", dashboardHandler.GetCategoryTrend)

	// Import/export routes; imports are rate limited
	imports := api.Group("/import")
	imports.Use(importLimiter.Middleware(func(c echo.Context) error {
		return NewTooManyRequestsError(c, "Import rate limit exceeded, try again later")
	}))
	imports.POST("/csv", transferHandler.ImportCSV)
	imports.POST("/json", transferHandler.ImportJSON)

	api.GET("/export/json", transferHandler.ExportJSON)
	api.GET("/export/csv", transferHandler.ExportCSV)
	api.DELETE("/data", transferHandler.Reset)
}
