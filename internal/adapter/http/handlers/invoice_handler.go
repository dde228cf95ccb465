package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"project_billing/internal/adapter/http/dto/request"
	"project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/adapter/http/middleware"
	"project_billing/internal/domain/entities"
	"project_billing/internal/domain/money"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves the invoice lifecycle and checkout.
type InvoiceHandler struct {
	invoices usecase.IInvoiceUseCase
	checkout usecase.ICheckoutUseCase
	log      *logger.Logger
}

func NewInvoiceHandler(invoices usecase.IInvoiceUseCase, checkout usecase.ICheckoutUseCase, log *logger.Logger) *InvoiceHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &InvoiceHandler{invoices: invoices, checkout: checkout, log: log.With("component", "invoice_handler")}
}

// CreateInvoice godoc
// @Summary  Create a standalone invoice
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project ID"
// @Param    body body request.CreateInvoiceRequest true "Line items"
// @Success  201 {object} response.InvoiceResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /projects/{id}/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}

	inv, err := h.invoices.Create(c.Request.Context(), middleware.ActorFrom(c), payload.ToCommand(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

// CreateInvoiceFromQuote godoc
// @Summary  Create an invoice from a signed quote
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    body body request.CreateInvoiceFromQuoteRequest true "Quote"
// @Success  201 {object} response.InvoiceResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /invoices/from-quote [post]
func (h *InvoiceHandler) CreateInvoiceFromQuote(c *gin.Context) {
	var payload request.CreateInvoiceFromQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}

	inv, err := h.invoices.CreateFromQuote(c.Request.Context(), middleware.ActorFrom(c), strings.TrimSpace(payload.QuoteID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromInvoice(inv))
}

// ListInvoices godoc
// @Summary  List a project's invoices
// @Tags     invoices
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {array} response.InvoiceResponse
// @Router   /projects/{id}/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	list, err := h.invoices.ListByProject(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(list))
}

// GetInvoice godoc
// @Summary  Get an invoice
// @Tags     invoices
// @Produce  json
// @Param    id path string true "Invoice ID"
// @Success  200 {object} response.InvoiceResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.invoices.GetByID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// TransitionInvoice godoc
// @Summary  Move an invoice to SENT, PAID or CANCELLED
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id   path string true "Invoice ID"
// @Param    body body request.StatusRequest true "Target status and optional due_at"
// @Success  200 {object} response.InvoiceResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /invoices/{id}/transition [post]
func (h *InvoiceHandler) TransitionInvoice(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}

	cmd := usecase.TransitionInvoiceCommand{
		Target: entities.InvoiceStatus(payload.Normalized()),
		DueAt:  payload.DueAt,
	}
	inv, err := h.invoices.Transition(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// ApplyPayment godoc
// @Summary  Record a payment against a sent invoice
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id   path string true "Invoice ID"
// @Param    body body request.ApplyPaymentRequest true "Amount in cents"
// @Success  200 {object} response.InvoiceResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /invoices/{id}/payments [post]
func (h *InvoiceHandler) ApplyPayment(c *gin.Context) {
	var payload request.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}

	inv, err := h.invoices.ApplyPayment(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), money.Cents(*payload.AmountCents))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// MarkPaid godoc
// @Summary  Mark a sent invoice as fully paid
// @Tags     invoices
// @Produce  json
// @Param    id path string true "Invoice ID"
// @Success  200 {object} response.InvoiceResponse
// @Router   /invoices/{id}/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	inv, err := h.invoices.MarkPaid(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// Checkout godoc
// @Summary  Charge the invoice's remaining amount through Mercado Pago
// @Description The body is a Mercado Pago payment request, optionally wrapped in {"mp_payload": ...}. The amount always comes from the invoice.
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id path string true "Invoice ID"
// @Success  200 {object} response.CheckoutResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  503 {object} pkg.HTTPError
// @Router   /invoices/{id}/checkout [post]
func (h *InvoiceHandler) Checkout(c *gin.Context) {
	invoiceID := c.Param("id")
	h.log.Info("checkout start", "invoice_id", invoiceID)

	payload, err := readMPPayload(c)
	if err != nil {
		h.log.Warn("checkout invalid payload", "invoice_id", invoiceID, "error", err)
		writeInvalidPayload(c)
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), middleware.ActorFrom(c), invoiceID, payload)
	if err != nil && result.ProviderPaymentID != "" {
		h.log.Error("checkout charged but not recorded", "invoice_id", invoiceID, "provider_payment_id", result.ProviderPaymentID, "error", err)
		writeError(c, err)
		return
	}
	if err != nil {
		h.log.Warn("checkout failed", "invoice_id", invoiceID, "error", err)
		writeError(c, err)
		return
	}
	h.log.Info("checkout done", "invoice_id", invoiceID, "provider_payment_id", result.ProviderPaymentID, "provider_status", result.ProviderStatus)

	c.JSON(http.StatusOK, response.FromCheckout(result))
}

// readMPPayload returns the gateway payload. An empty body becomes {} and a body of the
// form {"mp_payload": {...}} is unwrapped.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			trimmed := strings.TrimSpace(string(wrapped))
			if trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
