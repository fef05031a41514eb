package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodcourier/internal/api"
	"foodcourier/internal/models"
)

// Handler exposes catalog maintenance over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the catalog routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/menuitems", h.listMenuItems)
	r.POST("/menuitems", h.createMenuItem)
	r.GET("/menuitems/:id", h.getMenuItem)
	r.PUT("/menuitems/:id", h.updateMenuItem)
	r.GET("/menuitems/:id/addons", h.listMenuItemAddOns)
	r.POST("/menuitems/:id/addons", h.attachAddOn)

	r.GET("/addons", h.listAddOns)
	r.GET("/addons/:id", h.getAddOn)
	r.PUT("/addons/:id", h.updateAddOn)
}

func pathID(c *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.Error(c, models.ErrNotFound(resource, 0))
		return 0, false
	}
	return id, true
}

func (h *Handler) listMenuItems(c *gin.Context) {
	items, err := h.service.ListMenuItems(c.Request.Context())
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createMenuItem(c *gin.Context) {
	var req models.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	item, err := h.service.CreateMenuItem(c.Request.Context(), api.RequestID(c), &req)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) getMenuItem(c *gin.Context) {
	id, ok := pathID(c, "menu item")
	if !ok {
		return
	}

	item, err := h.service.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) updateMenuItem(c *gin.Context) {
	id, ok := pathID(c, "menu item")
	if !ok {
		return
	}

	var req models.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	item, err := h.service.UpdateMenuItem(c.Request.Context(), id, &req)
	if err != nil {
		api.ErrorDuplicateForbidden(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) listMenuItemAddOns(c *gin.Context) {
	id, ok := pathID(c, "menu item")
	if !ok {
		return
	}

	addons, err := h.service.ListAddOnsForMenuItem(c.Request.Context(), id)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, addons)
}

func (h *Handler) attachAddOn(c *gin.Context) {
	id, ok := pathID(c, "menu item")
	if !ok {
		return
	}

	var req models.CreateAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	addon, err := h.service.AttachAddOn(c.Request.Context(), api.RequestID(c), id, &req)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, addon)
}

func (h *Handler) listAddOns(c *gin.Context) {
	addons, err := h.service.ListAddOns(c.Request.Context())
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, addons)
}

func (h *Handler) getAddOn(c *gin.Context) {
	id, ok := pathID(c, "addon")
	if !ok {
		return
	}

	addon, err := h.service.GetAddOn(c.Request.Context(), id)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, addon)
}

func (h *Handler) updateAddOn(c *gin.Context) {
	id, ok := pathID(c, "addon")
	if !ok {
		return
	}

	var req models.UpdateAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	addon, err := h.service.UpdateAddOn(c.Request.Context(), id, &req)
	if err != nil {
		api.ErrorDuplicateForbidden(c, err)
		return
	}
	c.JSON(http.StatusCreated, addon)
}
