package model

import (
	"database/sql"

	"eke/shared/model"
)

const (
	TableName  = "ratings"
	EntityName = "rating"

	FieldID        = "id"
	FieldListingID = "listing_id"
	FieldRenterID  = "renter_id"
	FieldScore     = "score"
	FieldComment   = "comment"

	MinScore = 1
	MaxScore = 5
)

// Rating is a renter's score for a listing. Scores feed the listing's cached
// rating average, which is always re-derived from the full rating set.
type Rating struct {
	ID        string         `db:"id"`
	ListingID string         `db:"listing_id"`
	RenterID  string         `db:"renter_id"`
	Score     int            `db:"score"`
	Comment   sql.NullString `db:"comment"`
	model.Metadata
}
