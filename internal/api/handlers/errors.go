package handlers

import (
	"errors"
	"net/http"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinel errors onto HTTP status codes and
// renders a uniform error body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrPolicyNotFound),
		errors.Is(err, domain.ErrSupplierNotFound),
		errors.Is(err, domain.ErrRecommendationNotFound),
		errors.Is(err, domain.ErrPurchaseOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPolicy),
		errors.Is(err, domain.ErrInvalidSupplier):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidRecommendationState),
		errors.Is(err, domain.ErrInvalidPurchaseOrderState),
		errors.Is(err, domain.ErrPolicyInUse):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrDispatchFailed):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
