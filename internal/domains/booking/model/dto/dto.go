package dto

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eke/internal/domains/booking/model"
	"eke/shared"
	"eke/shared/constant"
	"eke/shared/failure"
	gDto "eke/shared/dto"
	gModel "eke/shared/model"
	"eke/shared/timezone"
)

type CreateBookingRequest struct {
	ListingID     string `json:"listing_id"     validate:"required,uuid"`
	StartDate     string `json:"start_date"     validate:"required"`
	EndDate       string `json:"end_date"       validate:"required"`
	RenterMessage string `json:"renter_message" validate:"omitempty,max=500"`
}

// ParseDates decodes the request's date strings and rejects inverted ranges.
func (c *CreateBookingRequest) ParseDates() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return start, end, failure.BadRequestFromString("invalid start_date, expected YYYY-MM-DD")
	}

	end, err = timezone.Parse(constant.DateOnlyFormat, c.EndDate)
	if err != nil {
		return start, end, failure.BadRequestFromString("invalid end_date, expected YYYY-MM-DD")
	}

	if !end.After(start) {
		return start, end, failure.BadRequestFromString("end_date must be after start_date")
	}

	return start, end, nil
}

// ToModel builds a pending booking with the price frozen at creation time.
func (c *CreateBookingRequest) ToModel(renterID string, start, end time.Time, totalPrice decimal.Decimal, expiresAt time.Time) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		ListingID:     c.ListingID,
		RenterID:      renterID,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    totalPrice,
		Status:        model.StatusPending,
		ExpiresAt:     sql.NullTime{Time: expiresAt, Valid: true},
		RenterMessage: shared.NullString(c.RenterMessage),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  renterID,
			ModifiedBy: renterID,
		},
	}
}

type ConfirmBookingRequest struct {
	PickupTime string `json:"pickup_time" validate:"omitempty,max=100"`
	ReturnTime string `json:"return_time" validate:"omitempty,max=100"`
	Dispatch   string `json:"dispatch"    validate:"omitempty,oneof=DELIVER_ONLY PICKUP_ONLY PICKUP_OR_DELIVERY"`
}

type DeclineBookingRequest struct {
	Message string `json:"message" validate:"omitempty,max=500"`
}

type AmendmentRequest struct {
	Fields  []string `json:"fields"  validate:"required,min=1,dive,oneof=start_date end_date pickup_time return_time dispatch"`
	Message string   `json:"message" validate:"required,max=500"`
}

func (a *AmendmentRequest) ToModel(actor model.AmendmentActor) model.Amendment {
	return model.Amendment{
		Fields:      a.Fields,
		Message:     a.Message,
		RequestedBy: actor,
	}
}

type UpdateBookingRequest struct {
	StartDate  string `db:"-"               json:"start_date"  validate:"omitempty"`
	EndDate    string `db:"-"               json:"end_date"    validate:"omitempty"`
	PickupTime string `db:"pickup_time"     json:"pickup_time" validate:"omitempty,max=100"`
	ReturnTime string `db:"return_time"     json:"return_time" validate:"omitempty,max=100"`
	Dispatch   string `db:"dispatch_method" json:"dispatch"    validate:"omitempty,oneof=DELIVER_ONLY PICKUP_ONLY PICKUP_OR_DELIVERY"`
}

// ParseDates decodes the optional replacement dates. The zero time marks a
// field the renter did not send.
func (u *UpdateBookingRequest) ParseDates() (start, end time.Time, err error) {
	if u.StartDate != constant.Empty {
		start, err = timezone.Parse(constant.DateOnlyFormat, u.StartDate)
		if err != nil {
			return start, end, failure.BadRequestFromString("invalid start_date, expected YYYY-MM-DD")
		}
	}

	if u.EndDate != constant.Empty {
		end, err = timezone.Parse(constant.DateOnlyFormat, u.EndDate)
		if err != nil {
			return start, end, failure.BadRequestFromString("invalid end_date, expected YYYY-MM-DD")
		}
	}

	return start, end, nil
}

type AmendmentResponse struct {
	Fields      []string `json:"fields"`
	Message     string   `json:"message"`
	RequestedBy string   `json:"requested_by"`
}

type BookingResponse struct {
	ID            string             `json:"id"`
	ListingID     string             `json:"listing_id"`
	RenterID      string             `json:"renter_id"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	TotalPrice    string             `json:"total_price"`
	Status        string             `json:"status"`
	ExpiresAt     string             `json:"expires_at,omitempty"`
	PickupTime    string             `json:"pickup_time,omitempty"`
	ReturnTime    string             `json:"return_time,omitempty"`
	Dispatch      string             `json:"dispatch,omitempty"`
	RenterMessage string             `json:"renter_message,omitempty"`
	Amendment     *AmendmentResponse `json:"amendment,omitempty"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(mod model.Booking) {
	b.ID = mod.ID
	b.ListingID = mod.ListingID
	b.RenterID = mod.RenterID
	b.StartDate = timezone.Format(mod.StartDate, constant.DateOnlyFormat)
	b.EndDate = timezone.Format(mod.EndDate, constant.DateOnlyFormat)
	b.TotalPrice = mod.TotalPrice.StringFixed(2)
	b.Status = mod.Status.String()
	b.PickupTime = mod.PickupTime.String
	b.ReturnTime = mod.ReturnTime.String
	b.Dispatch = mod.Dispatch.String
	b.RenterMessage = mod.RenterMessage.String

	if mod.ExpiresAt.Valid {
		b.ExpiresAt = timezone.Format(mod.ExpiresAt.Time, constant.DateFormat)
	}

	if mod.Amendment.Valid {
		b.Amendment = &AmendmentResponse{
			Fields:      mod.Amendment.Amendment.Fields,
			Message:     mod.Amendment.Amendment.Message,
			RequestedBy: string(mod.Amendment.Amendment.RequestedBy),
		}
	}

	b.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		g.Bookings[i].FromModel(mod)
	}
}
