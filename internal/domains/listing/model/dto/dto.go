package dto

import (
	"eke/internal/domains/listing/model"
	"eke/shared"
	gDto "eke/shared/dto"
)

type ListingResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
	District    string  `json:"district"`
	Dispatch    string  `json:"dispatch"`
	PricePerDay string  `json:"price_per_day"`
	Deposit     string  `json:"deposit"`
	IsActive    bool    `json:"is_active"`
	Stats       Stats   `json:"stats"`
	gDto.Metadata
}

// Stats mirrors the cached aggregate columns of a listing.
type Stats struct {
	BookingCount    int     `json:"booking_count"`
	TotalEarnings   string  `json:"total_earnings"`
	AvgEarnings     string  `json:"avg_earnings"`
	AvgDurationDays float64 `json:"avg_duration_days"`
	Rating          string  `json:"rating"`
	ReviewCount     int     `json:"review_count"`
}

func (r *ListingResponse) FromModel(mod model.Listing) {
	r.ID = mod.ID
	r.OwnerID = mod.OwnerID
	r.Title = mod.Title
	r.Description = mod.Description
	r.Category = mod.Category
	r.Condition = mod.Condition
	r.District = mod.District
	r.Dispatch = mod.Dispatch
	r.PricePerDay = mod.PricePerDay.StringFixed(2)
	r.Deposit = mod.Deposit.StringFixed(2)
	r.IsActive = mod.IsActive
	r.Stats = Stats{
		BookingCount:    mod.BookingCount,
		TotalEarnings:   mod.TotalEarnings.StringFixed(2),
		AvgEarnings:     mod.AvgEarnings.StringFixed(2),
		AvgDurationDays: mod.AvgDurationDays,
		Rating:          mod.Rating.StringFixed(2),
		ReviewCount:     mod.ReviewCount,
	}
	r.Metadata.FromModel(mod.Metadata)
}

type GetListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetListingsResponse) FromModels(models []model.Listing, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Listings = make([]ListingResponse, len(models))
	for i, mod := range models {
		r.Listings[i].FromModel(mod)
	}
}
