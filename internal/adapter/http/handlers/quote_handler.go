package handlers

import (
	"errors"
	"io"
	"net/http"

	"project_billing/internal/adapter/http/dto/request"
	"project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/adapter/http/middleware"
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves the quote lifecycle.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary  Freeze the project's pricing into a draft quote
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project ID"
// @Param    body body request.CreateQuoteRequest false "Deposit percent and expiry"
// @Success  201 {object} response.QuoteResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /projects/{id}/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	// The body is optional.
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		writeInvalidPayload(c)
		return
	}

	quote, err := h.usecase.Create(c.Request.Context(), middleware.ActorFrom(c), payload.ToCommand(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// ListQuotes godoc
// @Summary  List a project's quotes
// @Tags     quotes
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {array} response.QuoteResponse
// @Router   /projects/{id}/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	list, err := h.usecase.ListByProject(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(list))
}

// GetQuote godoc
// @Summary  Get a quote
// @Tags     quotes
// @Produce  json
// @Param    id path string true "Quote ID"
// @Success  200 {object} response.QuoteResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// TransitionQuote godoc
// @Summary  Move a quote to SENT, SIGNED, CANCELLED or EXPIRED
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id   path string true "Quote ID"
// @Param    body body request.StatusRequest true "Target status"
// @Success  200 {object} response.QuoteResponse
// @Failure  409 {object} pkg.HTTPError
// @Failure  422 {object} pkg.HTTPError
// @Router   /quotes/{id}/transition [post]
func (h *QuoteHandler) TransitionQuote(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}

	quote, err := h.usecase.Transition(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), entities.QuoteStatus(payload.Normalized()))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}
