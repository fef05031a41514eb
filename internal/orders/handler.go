package orders

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodcourier/internal/api"
	"foodcourier/internal/models"
)

// Handler exposes the order lifecycle over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates an order handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the order routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/orders", h.create)
	// One parameter slot serves both GET /orders/{id} and the status work
	// queues GET /orders/new and GET /orders/ready.
	r.GET("/orders/:key", h.getOrList)
	r.PUT("/orders/:id", h.updateStatus)
}

func (h *Handler) create(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	order, err := h.service.Create(c.Request.Context(), api.RequestID(c), &req)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) getOrList(c *gin.Context) {
	key := c.Param("key")

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		order, err := h.service.Get(c.Request.Context(), id)
		if err != nil {
			api.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
		return
	}

	orders, err := h.service.ListByStatusToken(c.Request.Context(), key)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.Error(c, models.ErrNotFound("order", 0))
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), api.RequestID(c), id, req.Status)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
