package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/restock-go/internal/service"
	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	service *service.ReplenishmentService
}

func NewRecommendationHandler(service *service.ReplenishmentService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

func (h *RecommendationHandler) List(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	recs, err := h.service.ListRecommendations(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "total": len(recs)})
}

func (h *RecommendationHandler) Summary(c *gin.Context) {
	summary, err := h.service.RecommendationSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *RecommendationHandler) Approve(c *gin.Context) {
	order, err := h.service.ApproveRecommendation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase_order": order})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *RecommendationHandler) Reject(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.RejectRecommendation(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RunAnalysis kicks the analysis cycle. A cycle already in flight
// returns immediately with zero recommendations.
func (h *RecommendationHandler) RunAnalysis(c *gin.Context) {
	recs, err := h.service.RunAnalysisCycle(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "total": len(recs)})
}
