package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/gin-gonic/gin"
)

const consumerEntity = "Consumer"

type consumerHandler struct {
	consumerService portssvc.ConsumerSvcFacade
}

func registerConsumerRoutes(rg *gin.RouterGroup, consumerService portssvc.ConsumerSvcFacade) {
	h := &consumerHandler{consumerService: consumerService}

	consumers := rg.Group("/consumers")
	{
		consumers.GET("/", h.listConsumers)
		consumers.POST("/", h.createConsumer)
		consumers.GET("/:id", h.getConsumer)
		consumers.PUT("/:id", h.updateConsumer)
		consumers.PATCH("/:id", h.updateConsumer)
		consumers.DELETE("/:id", h.deleteConsumer)
	}
}

// listConsumers godoc
// @Summary List consumers
// @Tags consumers
// @Produce json
// @Param cursor query string false "Pagination cursor"
// @Success 200 {object} dto.ListConsumersResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid cursor"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /consumers/ [get]
func (h *consumerHandler) listConsumers(c *gin.Context) {
	consumers, next, err := h.consumerService.ListConsumers(c.Request.Context(), cursorParam(c))
	if err != nil {
		writeServiceError(c, err, consumerEntity, "Failed to list consumers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListConsumersResponse(consumers, next))
}

// createConsumer godoc
// @Summary Create a consumer
// @Description SSN must have the form 123-45-6789. SSNs are not required to be unique.
// @Tags consumers
// @Accept json
// @Produce json
// @Param consumer body dto.CreateConsumerRequest true "Consumer details"
// @Success 201 {object} dto.ConsumerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /consumers/ [post]
func (h *consumerHandler) createConsumer(c *gin.Context) {
	var req dto.CreateConsumerRequest
	if !bindJSON(c, &req) {
		return
	}

	consumer, err := h.consumerService.CreateConsumer(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, consumerEntity, "Failed to create consumer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToConsumerResponse(consumer))
}

// getConsumer godoc
// @Summary Get a consumer
// @Tags consumers
// @Produce json
// @Param id path int true "Consumer ID"
// @Success 200 {object} dto.ConsumerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /consumers/{id} [get]
func (h *consumerHandler) getConsumer(c *gin.Context) {
	id, ok := parseIDParam(c, "id", consumerEntity)
	if !ok {
		return
	}

	consumer, err := h.consumerService.GetConsumerByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, consumerEntity, "Failed to retrieve consumer")
		return
	}
	c.JSON(http.StatusOK, dto.ToConsumerResponse(consumer))
}

// updateConsumer godoc
// @Summary Update a consumer
// @Tags consumers
// @Accept json
// @Produce json
// @Param id path int true "Consumer ID"
// @Param consumer body dto.UpdateConsumerRequest true "Fields to update"
// @Success 200 {object} dto.ConsumerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /consumers/{id} [put]
func (h *consumerHandler) updateConsumer(c *gin.Context) {
	id, ok := parseIDParam(c, "id", consumerEntity)
	if !ok {
		return
	}
	var req dto.UpdateConsumerRequest
	if !bindJSON(c, &req) {
		return
	}

	consumer, err := h.consumerService.UpdateConsumer(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, consumerEntity, "Failed to update consumer")
		return
	}
	c.JSON(http.StatusOK, dto.ToConsumerResponse(consumer))
}

// deleteConsumer godoc
// @Summary Delete a consumer
// @Tags consumers
// @Param id path int true "Consumer ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /consumers/{id} [delete]
func (h *consumerHandler) deleteConsumer(c *gin.Context) {
	id, ok := parseIDParam(c, "id", consumerEntity)
	if !ok {
		return
	}

	if err := h.consumerService.DeleteConsumer(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, consumerEntity, "Failed to delete consumer")
		return
	}
	c.Status(http.StatusNoContent)
}
