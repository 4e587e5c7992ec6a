package booking

import (
	"net/http"
	"slotlink/infras/otel"
	"slotlink/internal/domains/booking/model/dto"
	"slotlink/internal/domains/booking/service"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/validator"
	"slotlink/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBooking)
	})
}

// PublicRouter mounts the visitor facing endpoints behind the given limiter.
func (handler *Handler) PublicRouter(router chi.Router, limiter func(http.Handler) http.Handler) {
	router.With(limiter).Get("/public/links/{slug}", handler.GetPublicPage)
	router.With(limiter).Post("/public/links/{slug}/bookings", handler.Book)
}

// Book schedules a meeting through a link.
// @Summary Book a meeting
// @Description Book a meeting through a link, addressed by slug or id. The meeting length always comes from the link.
// @Tags Public
// @Accept json
// @Produce json
// @Param slug path string true "Link slug or ID"
// @Param request body dto.BookRequest true "Book Request"
// @Success 201 {object} response.Data[dto.BookResponse] "Booking created"
// @Failure 400 {object} response.Error "validation"
// @Failure 404 {object} response.Error "not_found"
// @Failure 409 {object} response.Error "slot_taken, usage_exceeded"
// @Failure 410 {object} response.Error "expired_link"
// @Failure 422 {object} response.Error "too_far_in_advance"
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/public/links/{slug}/bookings [post]
func (handler *Handler) Book(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Book")
	defer scope.End()

	req := dto.BookRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	req.LinkRef = chi.URLParam(request, constant.RequestParamSlug)

	booking, err := handler.service.Book(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("link", req.LinkRef).Msg("booking rejected")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + booking.BookingID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetPublicPage returns what a visitor needs to pick a slot.
// @Summary Get a public booking page
// @Tags Public
// @Produce json
// @Param slug path string true "Link slug"
// @Success 200 {object} response.Data[dto.PublicPageResponse] "Booking page"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 410 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/public/links/{slug} [get]
func (handler *Handler) GetPublicPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicPage")
	defer scope.End()

	slug := chi.URLParam(request, constant.RequestParamSlug)

	page, err := handler.service.PublicPage(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("slug", slug).Msg("failed to get public page")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, page)
}

// GetBookings lists the owner's upcoming bookings.
// @Summary Get upcoming bookings
// @Description Bookings scheduled from the start of today, earliest first.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Upcoming bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.ListUpcoming(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetBooking retrieves a booking with its link and enrichment.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingDetailResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.GetDetail(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}
