package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/SscSPs/collections_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const agencyEntity = "Collection agency"

// collectionAgencyHandler handles HTTP requests related to collection agencies.
type collectionAgencyHandler struct {
	agencyService portssvc.CollectionAgencySvcFacade
}

func newCollectionAgencyHandler(as portssvc.CollectionAgencySvcFacade) *collectionAgencyHandler {
	return &collectionAgencyHandler{agencyService: as}
}

// registerCollectionAgencyRoutes registers routes related to collection agencies.
func registerCollectionAgencyRoutes(rg *gin.RouterGroup, agencyService portssvc.CollectionAgencySvcFacade) {
	h := newCollectionAgencyHandler(agencyService)

	agencies := rg.Group("/collection-agencies")
	{
		agencies.GET("/", h.listCollectionAgencies)
		agencies.POST("/", h.createCollectionAgency)
		agencies.GET("/:id", h.getCollectionAgency)
		agencies.PUT("/:id", h.updateCollectionAgency)
		agencies.PATCH("/:id", h.updateCollectionAgency)
		agencies.DELETE("/:id", h.deleteCollectionAgency)
	}
}

// listCollectionAgencies godoc
// @Summary List collection agencies
// @Tags collection-agencies
// @Produce json
// @Param cursor query string false "Pagination cursor"
// @Success 200 {object} dto.ListCollectionAgenciesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid cursor"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /collection-agencies/ [get]
func (h *collectionAgencyHandler) listCollectionAgencies(c *gin.Context) {
	agencies, next, err := h.agencyService.ListCollectionAgencies(c.Request.Context(), cursorParam(c))
	if err != nil {
		writeServiceError(c, err, agencyEntity, "Failed to list collection agencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCollectionAgenciesResponse(agencies, next))
}

// createCollectionAgency godoc
// @Summary Create a collection agency
// @Tags collection-agencies
// @Accept json
// @Produce json
// @Param agency body dto.CreateCollectionAgencyRequest true "Agency details"
// @Success 201 {object} dto.CollectionAgencyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /collection-agencies/ [post]
func (h *collectionAgencyHandler) createCollectionAgency(c *gin.Context) {
	var req dto.CreateCollectionAgencyRequest
	if !bindJSON(c, &req) {
		return
	}

	agency, err := h.agencyService.CreateCollectionAgency(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, agencyEntity, "Failed to create collection agency")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Collection agency created", slog.Int64("collection_agency_id", agency.ID))
	c.JSON(http.StatusCreated, dto.ToCollectionAgencyResponse(agency))
}

// getCollectionAgency godoc
// @Summary Get a collection agency
// @Tags collection-agencies
// @Produce json
// @Param id path int true "Agency ID"
// @Success 200 {object} dto.CollectionAgencyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /collection-agencies/{id} [get]
func (h *collectionAgencyHandler) getCollectionAgency(c *gin.Context) {
	id, ok := parseIDParam(c, "id", agencyEntity)
	if !ok {
		return
	}

	agency, err := h.agencyService.GetCollectionAgencyByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, agencyEntity, "Failed to retrieve collection agency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionAgencyResponse(agency))
}

// updateCollectionAgency godoc
// @Summary Update a collection agency
// @Description Only the provided fields are changed.
// @Tags collection-agencies
// @Accept json
// @Produce json
// @Param id path int true "Agency ID"
// @Param agency body dto.UpdateCollectionAgencyRequest true "Fields to update"
// @Success 200 {object} dto.CollectionAgencyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /collection-agencies/{id} [put]
func (h *collectionAgencyHandler) updateCollectionAgency(c *gin.Context) {
	id, ok := parseIDParam(c, "id", agencyEntity)
	if !ok {
		return
	}
	var req dto.UpdateCollectionAgencyRequest
	if !bindJSON(c, &req) {
		return
	}

	agency, err := h.agencyService.UpdateCollectionAgency(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, agencyEntity, "Failed to update collection agency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionAgencyResponse(agency))
}

// deleteCollectionAgency godoc
// @Summary Delete a collection agency
// @Description Deleting an agency also deletes its clients and their accounts.
// @Tags collection-agencies
// @Param id path int true "Agency ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /collection-agencies/{id} [delete]
func (h *collectionAgencyHandler) deleteCollectionAgency(c *gin.Context) {
	id, ok := parseIDParam(c, "id", agencyEntity)
	if !ok {
		return
	}

	if err := h.agencyService.DeleteCollectionAgency(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, agencyEntity, "Failed to delete collection agency")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Collection agency deleted", slog.Int64("collection_agency_id", id))
	c.Status(http.StatusNoContent)
}
