package domain

import "errors"

var (
	// ErrNoSupplierAvailable means no active supplier carries a
	// non-discontinued offer for the product. The policy is skipped.
	ErrNoSupplierAvailable = errors.New("no supplier available for product")

	// ErrForecastUnavailable means the sales history is too short or
	// malformed to forecast from. The policy is skipped.
	ErrForecastUnavailable = errors.New("forecast unavailable: insufficient history")

	ErrRecommendationNotFound      = errors.New("recommendation not found")
	ErrInvalidRecommendationState  = errors.New("recommendation is not in a valid state for this operation")
	ErrPurchaseOrderNotFound       = errors.New("purchase order not found")
	ErrInvalidPurchaseOrderState   = errors.New("purchase order is not in a valid state for this operation")

	// ErrDispatchFailed wraps transient supplier transmission failures.
	// The caller decides whether to retry.
	ErrDispatchFailed = errors.New("purchase order dispatch failed")

	ErrPolicyNotFound   = errors.New("reorder policy not found")
	ErrInvalidPolicy    = errors.New("invalid reorder policy")
	ErrPolicyInUse      = errors.New("reorder policy is referenced by open recommendations")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrInvalidSupplier  = errors.New("invalid supplier profile")
)
