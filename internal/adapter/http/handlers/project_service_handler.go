package handlers

import (
	"net/http"

	"project_billing/internal/adapter/http/dto/request"
	"project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/adapter/http/middleware"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ProjectServiceHandler serves the services sold on a project and its live pricing.
type ProjectServiceHandler struct {
	usecase usecase.IProjectServiceUseCase
}

func NewProjectServiceHandler(uc usecase.IProjectServiceUseCase) *ProjectServiceHandler {
	return &ProjectServiceHandler{usecase: uc}
}

// AddService godoc
// @Summary  Add a catalog service to a project
// @Tags     project-services
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project ID"
// @Param    body body request.AddProjectServiceRequest true "Service"
// @Success  201 {object} response.ProjectServiceResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  422 {object} pkg.HTTPError
// @Router   /projects/{id}/services [post]
func (h *ProjectServiceHandler) AddService(c *gin.Context) {
	var payload request.AddProjectServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}

	svc, err := h.usecase.Add(c.Request.Context(), middleware.ActorFrom(c), payload.ToCommand(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromProjectService(svc))
}

// ListServices godoc
// @Summary  List a project's services
// @Tags     project-services
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {array} response.ProjectServiceResponse
// @Router   /projects/{id}/services [get]
func (h *ProjectServiceHandler) ListServices(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProjectServices(list))
}

// UpdateService godoc
// @Summary  Update a project service
// @Tags     project-services
// @Accept   json
// @Produce  json
// @Param    id   path string true "Project service ID"
// @Param    body body request.UpdateProjectServiceRequest true "Changed fields; price_cents_override null clears it"
// @Success  200 {object} response.ProjectServiceResponse
// @Router   /project-services/{id} [patch]
func (h *ProjectServiceHandler) UpdateService(c *gin.Context) {
	var payload request.UpdateProjectServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeInvalidPayload(c)
		return
	}
	cmd, err := payload.ToCommand()
	if err != nil {
		writeInvalidPayload(c)
		return
	}

	svc, err := h.usecase.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromProjectService(svc))
}

// RemoveService godoc
// @Summary  Remove a project service
// @Tags     project-services
// @Param    id path string true "Project service ID"
// @Success  204
// @Router   /project-services/{id} [delete]
func (h *ProjectServiceHandler) RemoveService(c *gin.Context) {
	if err := h.usecase.Remove(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPricing godoc
// @Summary  Live pricing snapshot of a project
// @Tags     project-services
// @Produce  json
// @Param    id path string true "Project ID"
// @Success  200 {object} response.PricingResponse
// @Router   /projects/{id}/pricing [get]
func (h *ProjectServiceHandler) GetPricing(c *gin.Context) {
	snapshot, err := h.usecase.Pricing(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPricing(snapshot))
}
