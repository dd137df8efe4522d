package domain

import "strings"

// Recommendation statuses.
const (
	RecommendationPending  = "pending"
	RecommendationApproved = "approved"
	RecommendationOrdered  = "ordered"
	RecommendationRejected = "rejected"
	RecommendationExpired  = "expired"
)

// Purchase order statuses.
const (
	POStatusDraft             = "draft"
	POStatusSent              = "sent"
	POStatusConfirmed         = "confirmed"
	POStatusPartiallyReceived = "partially_received"
	POStatusReceived          = "received"
	POStatusCancelled         = "cancelled"
)

// Supplier statuses.
const (
	SupplierActive    = "active"
	SupplierInactive  = "inactive"
	SupplierSuspended = "suspended"
)

// Offer availability states.
const (
	OfferInStock      = "in_stock"
	OfferMadeToOrder  = "made_to_order"
	OfferDiscontinued = "discontinued"
)

// Urgency buckets.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// recommendationTransitions lists the one-way transitions a
// recommendation may take. Everything not listed is rejected.
var recommendationTransitions = map[string][]string{
	RecommendationPending:  {RecommendationApproved, RecommendationRejected, RecommendationExpired},
	RecommendationApproved: {RecommendationOrdered},
}

// poTransitions lists the forward transitions of a purchase order.
// cancelled is reachable from any non-terminal state.
var poTransitions = map[string][]string{
	POStatusDraft:             {POStatusSent, POStatusCancelled},
	POStatusSent:              {POStatusConfirmed, POStatusCancelled},
	POStatusConfirmed:         {POStatusPartiallyReceived, POStatusReceived, POStatusCancelled},
	POStatusPartiallyReceived: {POStatusReceived, POStatusCancelled},
}

// CanTransitionRecommendation reports whether a recommendation may move
// from one status to another.
func CanTransitionRecommendation(from, to string) bool {
	for _, next := range recommendationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionPO reports whether a purchase order may move from one
// status to another.
func CanTransitionPO(from, to string) bool {
	for _, next := range poTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var urgencyRanks = map[string]int{
	UrgencyLow:      0,
	UrgencyMedium:   1,
	UrgencyHigh:     2,
	UrgencyCritical: 3,
}

// UrgencyRank returns a sortable rank for an urgency label (unknown
// labels rank lowest).
func UrgencyRank(urgency string) int {
	return urgencyRanks[strings.ToLower(urgency)]
}

var validRecommendationStatuses = map[string]bool{
	RecommendationPending:  true,
	RecommendationApproved: true,
	RecommendationOrdered:  true,
	RecommendationRejected: true,
	RecommendationExpired:  true,
}

var validPOStatuses = map[string]bool{
	POStatusDraft:             true,
	POStatusSent:              true,
	POStatusConfirmed:         true,
	POStatusPartiallyReceived: true,
	POStatusReceived:          true,
	POStatusCancelled:         true,
}

// ParseRecommendationStatus validates a status filter value (case-insensitive).
func ParseRecommendationStatus(label string) (string, bool) {
	status := strings.ToLower(strings.TrimSpace(label))
	return status, validRecommendationStatuses[status]
}

// ParsePOStatus validates a purchase order status filter value (case-insensitive).
func ParsePOStatus(label string) (string, bool) {
	status := strings.ToLower(strings.TrimSpace(label))
	return status, validPOStatuses[status]
}
