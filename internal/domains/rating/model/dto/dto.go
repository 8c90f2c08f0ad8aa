package dto

import (
	"github.com/google/uuid"

	"eke/internal/domains/rating/model"
	"eke/shared"
	gDto "eke/shared/dto"
	gModel "eke/shared/model"
	"eke/shared/timezone"
)

type SubmitRatingRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	Score     int    `json:"score"      validate:"required,min=1,max=5"`
	Comment   string `json:"comment"    validate:"omitempty,max=1000"`
}

func (s *SubmitRatingRequest) ToModel(renterID string) model.Rating {
	return model.Rating{
		ID:        uuid.NewString(),
		ListingID: s.ListingID,
		RenterID:  renterID,
		Score:     s.Score,
		Comment:   shared.NullString(s.Comment),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  renterID,
			ModifiedBy: renterID,
		},
	}
}

type RatingResponse struct {
	ID        string `json:"id"`
	ListingID string `json:"listing_id"`
	RenterID  string `json:"renter_id"`
	Score     int    `json:"score"`
	Comment   string `json:"comment,omitempty"`
	gDto.Metadata
}

func (r *RatingResponse) FromModel(mod model.Rating) {
	r.ID = mod.ID
	r.ListingID = mod.ListingID
	r.RenterID = mod.RenterID
	r.Score = mod.Score
	r.Comment = mod.Comment.String
	r.Metadata.FromModel(mod.Metadata)
}

type GetRatingsResponse struct {
	Ratings   []RatingResponse `json:"ratings"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (g *GetRatingsResponse) FromModels(models []model.Rating, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Ratings = make([]RatingResponse, len(models))
	for i, mod := range models {
		g.Ratings[i].FromModel(mod)
	}
}
