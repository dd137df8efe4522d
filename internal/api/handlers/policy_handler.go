package handlers

import (
	"net/http"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/andresuchdata/restock-go/internal/service"
	"github.com/gin-gonic/gin"
)

type PolicyHandler struct {
	service *service.ReplenishmentService
}

func NewPolicyHandler(service *service.ReplenishmentService) *PolicyHandler {
	return &PolicyHandler{service: service}
}

func (h *PolicyHandler) List(c *gin.Context) {
	policies, err := h.service.ListPolicies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"policies": policies, "total": len(policies)})
}

func (h *PolicyHandler) Create(c *gin.Context) {
	var policy domain.ReorderPolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.AddPolicy(c.Request.Context(), &policy); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, policy)
}

func (h *PolicyHandler) Update(c *gin.Context) {
	var policy domain.ReorderPolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	policy.ID = c.Param("id")

	if err := h.service.UpdatePolicy(c.Request.Context(), &policy); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, policy)
}

func (h *PolicyHandler) Delete(c *gin.Context) {
	if err := h.service.RemovePolicy(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
