package model

import (
	"github.com/shopspring/decimal"

	"eke/shared/model"
)

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID             = "id"
	FieldOwnerID        = "owner_id"
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldCondition      = "condition"
	FieldDistrict       = "district"
	FieldDispatch       = "dispatch"
	FieldPricePerDay    = "price_per_day"
	FieldDeposit        = "deposit"
	FieldBookingCount   = "booking_count"
	FieldTotalEarnings  = "total_earnings"
	FieldAvgEarnings    = "avg_earnings"
	FieldAvgDuration    = "avg_duration_days"
	FieldRating         = "rating"
	FieldReviewCount    = "review_count"
	FieldIsActive       = "is_active"
)

const (
	CategoryPowerTools   = "POWER_TOOLS"
	CategoryGardening    = "GARDENING"
	CategoryConstruction = "CONSTRUCTION"
	CategoryCleaning     = "CLEANING"
	CategoryAutomotive   = "AUTOMOTIVE"
	CategoryGenerators   = "GENERATORS"
	CategoryLadders      = "LADDERS"
	CategoryScaffolding  = "SCAFFOLDING"
	CategoryOther        = "OTHER"
)

const (
	DispatchDeliverOnly      = "DELIVER_ONLY"
	DispatchPickupOnly       = "PICKUP_ONLY"
	DispatchPickupOrDelivery = "PICKUP_OR_DELIVERY"
)

// Listing is an item offered for rent. The aggregate fields (booking count,
// earnings, durations, rating) are derived caches: they must always be
// reproducible by recomputation from the booking and rating sets.
type Listing struct {
	ID          string          `db:"id"`
	OwnerID     string          `db:"owner_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Condition   string          `db:"condition"`
	District    string          `db:"district"`
	Dispatch    string          `db:"dispatch"`
	PricePerDay decimal.Decimal `db:"price_per_day"`
	Deposit     decimal.Decimal `db:"deposit"`

	BookingCount    int             `db:"booking_count"`
	TotalEarnings   decimal.Decimal `db:"total_earnings"`
	AvgEarnings     decimal.Decimal `db:"avg_earnings"`
	AvgDurationDays float64         `db:"avg_duration_days"`
	Rating          decimal.Decimal `db:"rating"`
	ReviewCount     int             `db:"review_count"`

	IsActive bool `db:"is_active"`
	model.Metadata
}
