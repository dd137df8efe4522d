package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/restock-go/internal/service"
	"github.com/gin-gonic/gin"
)

type PurchaseOrderHandler struct {
	service *service.ReplenishmentService
}

func NewPurchaseOrderHandler(service *service.ReplenishmentService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: service}
}

func (h *PurchaseOrderHandler) List(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	orders, err := h.service.ListPurchaseOrders(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	order, err := h.service.GetPurchaseOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *PurchaseOrderHandler) Send(c *gin.Context) {
	if err := h.service.SendPurchaseOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	order, err := h.service.GetPurchaseOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.MarkPurchaseOrder(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	order, err := h.service.GetPurchaseOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
