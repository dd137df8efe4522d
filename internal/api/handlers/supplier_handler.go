package handlers

import (
	"net/http"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/service"
	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	service *service.ReplenishmentService
}

func NewSupplierHandler(service *service.ReplenishmentService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.service.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers, "total": len(suppliers)})
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var supplier domain.SupplierProfile
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.AddSupplier(c.Request.Context(), &supplier); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	var supplier domain.SupplierProfile
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	supplier.ID = c.Param("id")

	if err := h.service.UpdateSupplier(c.Request.Context(), &supplier); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}
