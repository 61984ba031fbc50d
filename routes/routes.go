package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/opencivic/ledger/controllers"
	"github.com/opencivic/ledger/routes/middlewares"
)

func SetupRouter() *fiber.App {
	app := fiber.New()

	app.Get("/api/v2/public/timestamp", controllers.GetTimestamp)

	finance := app.Group("/api/v2/finance", middlewares.Authenticate)

	finance.Get("/categories", controllers.GetCategories)
	finance.Post("/categories", controllers.CreateCategory)
	finance.Put("/categories/:id", controllers.UpdateCategory)
	finance.Delete("/categories/:id", controllers.DeleteCategory)

	finance.Get("/transactions", controllers.GetTransactions)
	finance.Post("/transactions", controllers.CreateTransaction)
	finance.Put("/transactions/:id", controllers.UpdateTransaction)
	finance.Delete("/transactions/:id", controllers.DeleteTransaction)

	finance.Get("/invoices", controllers.GetInvoices)
	finance.Post("/invoices", controllers.CreateInvoice)
	finance.Get("/invoices/:id", controllers.GetInvoice)
	finance.Put("/invoices/:id", controllers.UpdateInvoice)
	finance.Post("/invoices/:id/transition", controllers.TransitionInvoice)

	finance.Get("/budgets", controllers.GetBudgets)
	finance.Post("/budgets", controllers.CreateBudget)
	finance.Put("/budgets/:id", controllers.UpdateBudget)
	finance.Delete("/budgets/:id", controllers.DeleteBudget)
	finance.Post("/budgets/:id/recalculate", controllers.RecalculateBudget)

	finance.Get("/summary", controllers.GetSummary)
	finance.Get("/reports/monthly", controllers.GetMonthlyReport)
	finance.Get("/reports/categories", controllers.GetCategoryReport)

	return app
}
