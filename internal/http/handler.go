package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grubdash-service/internal/apperr"
	"github.com/grubdash-service/internal/logger"
	"github.com/grubdash-service/internal/pipeline"
	"github.com/grubdash-service/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	dishes *service.DishService
	orders *service.OrderService
}

func NewHandler(dishes *service.DishService, orders *service.OrderService) *Handler {
	return &Handler{dishes: dishes, orders: orders}
}

type requestBody struct {
	Data map[string]any `json:"data"`
}

// RegisterRoutes mounts the resources and makes the engine answer 405 for a
// known path with an unsupported verb and 404 for anything else.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(MethodNotAllowed)
	r.NoRoute(NotFound)

	r.GET("/dishes", h.ListDishes)
	r.POST("/dishes", h.CreateDish)
	r.GET("/dishes/:dishId", h.ReadDish)
	r.PUT("/dishes/:dishId", h.UpdateDish)

	r.GET("/orders", h.ListOrders)
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:orderId", h.ReadOrder)
	r.PUT("/orders/:orderId", h.UpdateOrder)
	r.DELETE("/orders/:orderId", h.DeleteOrder)
}

// ListDishes accepts an optional ?id= filter.
func (h *Handler) ListDishes(c *gin.Context) {
	resp, err := h.dishes.List(c.Request.Context(), c.Query("id"))
	respond(c, resp, err)
}

func (h *Handler) CreateDish(c *gin.Context) {
	data, ok := bindData(c)
	if !ok {
		return
	}
	resp, err := h.dishes.Create(c.Request.Context(), data)
	respond(c, resp, err)
}

func (h *Handler) ReadDish(c *gin.Context) {
	resp, err := h.dishes.Read(c.Request.Context(), c.Param("dishId"))
	respond(c, resp, err)
}

func (h *Handler) UpdateDish(c *gin.Context) {
	data, ok := bindData(c)
	if !ok {
		return
	}
	resp, err := h.dishes.Update(c.Request.Context(), c.Param("dishId"), data)
	respond(c, resp, err)
}

// ListOrders accepts an optional ?id= filter.
func (h *Handler) ListOrders(c *gin.Context) {
	resp, err := h.orders.List(c.Request.Context(), c.Query("id"))
	respond(c, resp, err)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	data, ok := bindData(c)
	if !ok {
		return
	}
	resp, err := h.orders.Create(c.Request.Context(), data)
	respond(c, resp, err)
}

func (h *Handler) ReadOrder(c *gin.Context) {
	resp, err := h.orders.Read(c.Request.Context(), c.Param("orderId"))
	respond(c, resp, err)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	data, ok := bindData(c)
	if !ok {
		return
	}
	resp, err := h.orders.Update(c.Request.Context(), c.Param("orderId"), data)
	respond(c, resp, err)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	resp, err := h.orders.Delete(c.Request.Context(), c.Param("orderId"))
	respond(c, resp, err)
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"error": fmt.Sprintf("%s not allowed for %s", c.Request.Method, c.Request.URL.Path),
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Path not found: " + c.Request.URL.Path})
}

// bindData decodes {"data": {...}}. An empty body is an empty payload so the
// chain reports which field is missing.
func bindData(c *gin.Context) (pipeline.Payload, bool) {
	var body requestBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be valid JSON"})
		return nil, false
	}
	return pipeline.Payload(body.Data), true
}

func respond(c *gin.Context, resp pipeline.Response, err error) {
	if err != nil {
		renderError(c.Request.Context(), c, err)
		return
	}
	if resp.Status == http.StatusNoContent || resp.Data == nil {
		c.Status(resp.Status)
		return
	}
	c.JSON(resp.Status, gin.H{"data": resp.Data})
}

func renderError(ctx context.Context, c *gin.Context, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(ctx).Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.MessageOf(err)})
}
