package drivers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodcourier/internal/api"
	"foodcourier/internal/models"
)

// Handler exposes the driver registry over HTTP.
type Handler struct {
	store *Store
}

// NewHandler creates a driver handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the driver routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/drivers", h.list)
	r.POST("/drivers", h.create)
}

func (h *Handler) list(c *gin.Context) {
	drivers, err := h.store.ListDrivers(c.Request.Context())
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) create(c *gin.Context) {
	var req models.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	driver := &models.Driver{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Status:      models.DriverStatus(req.Status),
	}
	if err := h.store.CreateDriver(c.Request.Context(), driver); err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}
