package model

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"eke/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldListingID     = "listing_id"
	FieldRenterID      = "renter_id"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldTotalPrice    = "total_price"
	FieldStatus        = "status"
	FieldExpiresAt     = "expires_at"
	FieldPickupTime    = "pickup_time"
	FieldReturnTime    = "return_time"
	FieldDispatch      = "dispatch_method"
	FieldRenterMessage = "renter_message"
	FieldAmendment     = "amendment"
)

// Status is a booking lifecycle state.
type Status string

const (
	StatusPending            Status = "PENDING"
	StatusConfirmed          Status = "CONFIRMED"
	StatusPaid               Status = "PAID"
	StatusActive             Status = "ACTIVE"
	StatusCompleted          Status = "COMPLETED"
	StatusCancelled          Status = "CANCELLED"
	StatusExpired            Status = "EXPIRED"
	StatusDisputed           Status = "DISPUTED"
	StatusAmendmentRequested Status = "AMENDMENT_REQUESTED"
)

// validTransitions is the booking state machine. Actor permissions are
// enforced by the service layer; this map is only about status legality.
// PAID/ACTIVE/COMPLETED are driven by external fulfillment tracking and
// DISPUTED by the external dispute collaborator.
var validTransitions = map[Status][]Status{
	StatusPending:            {StatusConfirmed, StatusCancelled, StatusExpired, StatusAmendmentRequested},
	StatusConfirmed:          {StatusCancelled, StatusPaid, StatusDisputed, StatusAmendmentRequested},
	StatusPaid:               {StatusActive, StatusCancelled},
	StatusActive:             {StatusCompleted, StatusDisputed},
	StatusAmendmentRequested: {StatusPending, StatusCancelled},
	StatusCompleted:          {},
	StatusCancelled:          {},
	StatusExpired:            {},
	StatusDisputed:           {},
}

// OccupancySet are the statuses that block other bookings on the same listing
// for overlapping dates. Pending requests never block one another.
var OccupancySet = []Status{StatusConfirmed}

// HonoredSet are the statuses counted toward earnings and duration
// aggregates. Broader than the occupancy set: fulfilled bookings keep
// contributing to earnings history after they stop blocking new dates.
var HonoredSet = []Status{StatusConfirmed, StatusPaid, StatusActive, StatusCompleted}

// IsValid reports whether the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]

	return ok
}

// CanTransitionTo reports whether moving from this status to target is legal.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// InHonoredSet reports whether the status counts toward earnings aggregates.
func (s Status) InHonoredSet() bool {
	for _, honored := range HonoredSet {
		if s == honored {
			return true
		}
	}

	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", raw)
	}

	return status, nil
}

// StatusStrings converts a status set to its string form for SQL filters.
func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}

	return out
}

// AmendmentActor identifies who asked for a booking amendment.
type AmendmentActor string

const (
	AmendmentByOwner  AmendmentActor = "OWNER"
	AmendmentByRenter AmendmentActor = "RENTER"
)

// Amendment is an owner-proposed change to booking logistics awaiting the
// renter's re-approval. It is stored inline (jsonb) and exists only while the
// booking is in AMENDMENT_REQUESTED.
type Amendment struct {
	Fields      []string       `json:"fields"`
	Message     string         `json:"message"`
	RequestedBy AmendmentActor `json:"requested_by"`
}

// NullAmendment wraps Amendment for jsonb column scanning; Valid is false
// when the column is NULL.
type NullAmendment struct {
	Amendment Amendment
	Valid     bool
}

func (a *NullAmendment) Scan(value any) error {
	if value == nil {
		a.Amendment, a.Valid = Amendment{}, false

		return nil
	}

	var raw []byte

	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported amendment column type %T", value)
	}

	if err := json.Unmarshal(raw, &a.Amendment); err != nil {
		return fmt.Errorf("failed to decode amendment: %w", err)
	}

	a.Valid = true

	return nil
}

func (a NullAmendment) Value() (driver.Value, error) {
	if !a.Valid {
		return nil, nil
	}

	raw, err := json.Marshal(a.Amendment)
	if err != nil {
		return nil, fmt.Errorf("failed to encode amendment: %w", err)
	}

	return raw, nil
}

// Booking is the central entity: a time-bound reservation of a listing by a
// renter. listing/renter references are immutable after creation and the
// total price is frozen at creation time.
type Booking struct {
	ID            string          `db:"id"`
	ListingID     string          `db:"listing_id"`
	RenterID      string          `db:"renter_id"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	Status        Status          `db:"status"`
	ExpiresAt     sql.NullTime    `db:"expires_at"`
	PickupTime    sql.NullString  `db:"pickup_time"`
	ReturnTime    sql.NullString  `db:"return_time"`
	Dispatch      sql.NullString  `db:"dispatch_method"`
	RenterMessage sql.NullString  `db:"renter_message"`
	Amendment     NullAmendment   `db:"amendment"`
	model.Metadata
}

// Overlaps reports whether the booking's date range overlaps [start, end]
// inclusively on both endpoints.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !start.After(b.EndDate)
}
