package routes

import (
	"project_billing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProjects        = "/projects"
	PathProjectServices = "/project-services"
	PathQuotes          = "/quotes"
	PathInvoices        = "/invoices"
)

func addProjectRoutes(rg *gin.RouterGroup, projectHandler *handlers.ProjectHandler, serviceHandler *handlers.ProjectServiceHandler) {
	projects := rg.Group(PathProjects)
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PATCH("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.PATCH("/:id/status", projectHandler.SetStatus)
		projects.PATCH("/:id/quote-status", projectHandler.SetQuoteStatus)
		projects.PATCH("/:id/deposit-status", projectHandler.SetDepositStatus)
		projects.PUT("/:id/billing-quote", projectHandler.BindBillingQuote)
		projects.POST("/:id/start", projectHandler.StartProject)
		projects.POST("/:id/archive", projectHandler.ArchiveProject)
		projects.POST("/:id/unarchive", projectHandler.UnarchiveProject)

		projects.POST("/:id/services", serviceHandler.AddService)
		projects.GET("/:id/services", serviceHandler.ListServices)
		projects.GET("/:id/pricing", serviceHandler.GetPricing)
	}

	services := rg.Group(PathProjectServices)
	{
		services.PATCH("/:id", serviceHandler.UpdateService)
		services.DELETE("/:id", serviceHandler.RemoveService)
	}
}

func addBillingRoutes(rg *gin.RouterGroup, projectHandler *handlers.ProjectHandler, quoteHandler *handlers.QuoteHandler, invoiceHandler *handlers.InvoiceHandler) {
	projects := rg.Group(PathProjects)
	{
		projects.GET("/:id/summary", projectHandler.GetBillingSummary)
		projects.POST("/:id/quotes", quoteHandler.CreateQuote)
		projects.GET("/:id/quotes", quoteHandler.ListQuotes)
		projects.POST("/:id/invoices", invoiceHandler.CreateInvoice)
		projects.GET("/:id/invoices", invoiceHandler.ListInvoices)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("/:id/transition", quoteHandler.TransitionQuote)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("/from-quote", invoiceHandler.CreateInvoiceFromQuote)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.POST("/:id/transition", invoiceHandler.TransitionInvoice)
		invoices.POST("/:id/payments", invoiceHandler.ApplyPayment)
		invoices.POST("/:id/mark-paid", invoiceHandler.MarkPaid)
		invoices.POST("/:id/checkout", invoiceHandler.Checkout)
	}
}
