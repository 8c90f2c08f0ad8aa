package rating

import (
	"net/http"

	"eke/infras/otel"
	"eke/internal/domains/rating/model/dto"
	"eke/internal/domains/rating/service"
	"eke/shared/constant"
	gDto "eke/shared/dto"
	"eke/shared/validator"
	"eke/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rating
	otel    otel.Otel
}

func New(service service.Rating, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/ratings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitRating)
		routerGroup.Get("/listing/{id}", handler.GetRatingsByListing)
	})
}

// SubmitRating handles the submission of a new rating for a listing.
// @Summary Submit a rating
// @Description Submit a score and optional comment for a listing. The listing aggregate is refolded from all of its ratings.
// @Tags Rating
// @Accept json
// @Produce json
// @Param request body dto.SubmitRatingRequest true "Submit Rating Request"
// @Success 201 {object} response.Data[dto.RatingResponse] "Rating submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings [post]
// @Security BearerAuth
func (handler *Handler) SubmitRating(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitRating")
	defer scope.End()

	req := dto.SubmitRatingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	rating, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit rating")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rating submitted successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, rating)
}

// GetRatingsByListing retrieves all ratings for a listing.
// @Summary Get ratings for a listing
// @Description Retrieve all ratings submitted for a listing with pagination.
// @Tags Rating
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRatingsResponse] "List of ratings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings/listing/{id} [get]
func (handler *Handler) GetRatingsByListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRatingsByListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	ratings, err := handler.service.GetByListing(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ratings for listing")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Ratings retrieved successfully")

	response.WithJSON(w, http.StatusOK, ratings)
}
