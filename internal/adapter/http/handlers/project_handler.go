package handlers

import (
	"context"
	"net/http"
	"strings"

	"project_billing/internal/adapter/http/dto/request"
	"project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/adapter/http/middleware"
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ProjectHandler serves the project lifecycle and its billing summary.
type ProjectHandler struct {
	projects usecase.IProjectUseCase
	summary  usecase.IBillingSummaryUseCase
}

func NewProjectHandler(projects usecase.IProjectUseCase, summary usecase.IBillingSummaryUseCase) *ProjectHandler {
	return &ProjectHandler{projects: projects, summary: summary}
}

// CreateProject godoc
// @Summary  Create a project
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    body body request.CreateProjectRequest true "Project"
// @Success  201 {object} response.ProjectResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  403 {object} pkg.HTTPError
// @Router   /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var payload request.CreateProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), middleware.ActorFrom(c), payload.ToCommand())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromProject(project))
}

// GetProject godoc
// @Summary  Get a project
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} response.ProjectResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	h.respondProject(c, http.StatusOK, h.projects.GetByID)
}

// UpdateProject godoc
// @Summary  Update project details
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project ID"
// @Param    body body request.UpdateProjectRequest true "Changed fields"
// @Success  200 {object} response.ProjectResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  409 {object} pkg.HTTPError
// @Failure  422 {object} pkg.HTTPError
// @Router   /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var payload request.UpdateProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}
	h.respondProject(c, http.StatusOK, func(ctx context.Context, actor entities.Actor, id string) (entities.Project, error) {
		return h.projects.Update(ctx, actor, id, payload.ToCommand())
	})
}

// DeleteProject godoc
// @Summary  Delete a project and its services
// @Tags     projects
// @Param    id path string true "Project ID"
// @Success  204
// @Failure  403 {object} pkg.HTTPError
// @Failure  404 {object} pkg.HTTPError
// @Router   /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetStatus godoc
// @Summary  Move the project status
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project ID"
// @Param    body body request.StatusRequest true "Target status"
// @Success  200 {object} response.ProjectResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /projects/{id}/status [patch]
func (h *ProjectHandler) SetStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}
	h.respondProject(c, http.StatusOK, func(ctx context.Context, actor entities.Actor, id string) (entities.Project, error) {
		return h.projects.SetStatus(ctx, actor, id, entities.ProjectStatus(payload.Normalized()))
	})
}

// SetQuoteStatus godoc
// @Summary  Set the project quote status
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project ID"
// @Param    body body request.StatusRequest true "Target quote status"
// @Success  200 {object} response.ProjectResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /projects/{id}/quote-status [patch]
func (h *ProjectHandler) SetQuoteStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}
	h.respondProject(c, http.StatusOK, func(ctx context.Context, actor entities.Actor, id string) (entities.Project, error) {
		return h.projects.SetQuoteStatus(ctx, actor, id, entities.ProjectQuoteStatus(payload.Normalized()))
	})
}

// SetDepositStatus godoc
// @Summary  Set the project deposit status
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project ID"
// @Param    body body request.SetDepositStatusRequest true "Deposit status and optional paid_at"
// @Success  200 {object} response.ProjectResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /projects/{id}/deposit-status [patch]
func (h *ProjectHandler) SetDepositStatus(c *gin.Context) {
	var payload request.SetDepositStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}
	cmd, err := payload.ToCommand()
	if err != nil {
		writeInvalidPayload(c)
		return
	}
	h.respondProject(c, http.StatusOK, func(ctx context.Context, actor entities.Actor, id string) (entities.Project, error) {
		return h.projects.SetDepositStatus(ctx, actor, id, cmd)
	})
}

// BindBillingQuote godoc
// @Summary  Bind a signed quote as the project's billing quote
// @Tags     projects
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project ID"
// @Param    body body request.BindBillingQuoteRequest true "Quote"
// @Success  200 {object} response.ProjectResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /projects/{id}/billing-quote [put]
func (h *ProjectHandler) BindBillingQuote(c *gin.Context) {
	var payload request.BindBillingQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}
	h.respondProject(c, http.StatusOK, func(ctx context.Context, actor entities.Actor, id string) (entities.Project, error) {
		return h.projects.BindBillingQuote(ctx, actor, id, strings.TrimSpace(payload.QuoteID))
	})
}

// StartProject godoc
// @Summary  Start a project and generate its tasks
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} response.StartProjectResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /projects/{id}/start [post]
func (h *ProjectHandler) StartProject(c *gin.Context) {
	result, err := h.projects.Start(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStartResult(result))
}

// ArchiveProject godoc
// @Summary  Archive a project
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} response.ProjectResponse
// @Router   /projects/{id}/archive [post]
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	h.respondProject(c, http.StatusOK, h.projects.Archive)
}

// UnarchiveProject godoc
// @Summary  Unarchive a project
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} response.ProjectResponse
// @Router   /projects/{id}/unarchive [post]
func (h *ProjectHandler) UnarchiveProject(c *gin.Context) {
	h.respondProject(c, http.StatusOK, h.projects.Unarchive)
}

// GetBillingSummary godoc
// @Summary  Compute the project's billing summary
// @Tags     projects
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} response.BillingSummaryResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /projects/{id}/summary [get]
func (h *ProjectHandler) GetBillingSummary(c *gin.Context) {
	summary, err := h.summary.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBillingSummary(summary))
}

func (h *ProjectHandler) respondProject(
	c *gin.Context,
	status int,
	fn func(ctx context.Context, actor entities.Actor, projectID string) (entities.Project, error),
) {
	project, err := fn(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, response.FromProject(project))
}
