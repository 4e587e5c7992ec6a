package calendar

import (
	"net/http"
	"slotlink/infras/otel"
	"slotlink/internal/domains/commitment/model/dto"
	"slotlink/internal/domains/commitment/service"
	"slotlink/shared/constant"
	"slotlink/shared/failure"
	"slotlink/shared/timezone"
	"slotlink/shared/validator"
	"slotlink/transport/http/response"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/calendars", func(routerGroup chi.Router) {
		routerGroup.Put("/", handler.ConnectCalendar)
		routerGroup.Get("/", handler.GetCalendars)
		routerGroup.Delete("/{id}", handler.DisconnectCalendar)
		routerGroup.Post("/{id}/busy", handler.PushBusy)
	})

	router.Get("/busy", handler.GetBusy)
}

// ConnectCalendar registers an external calendar, or returns the existing one for the same ref.
// @Summary Connect a calendar
// @Tags Calendar
// @Accept json
// @Produce json
// @Param request body dto.ConnectCalendarRequest true "Calendar"
// @Success 200 {object} response.Data[dto.CalendarResponse] "Connected calendar"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendars [put]
// @Security BearerAuth
func (handler *Handler) ConnectCalendar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConnectCalendar")
	defer scope.End()

	req := dto.ConnectCalendarRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	calendar, err := handler.service.ConnectCalendar(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to connect calendar")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, calendar)
}

// GetCalendars lists connected calendars.
// @Summary Get calendars
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Data[dto.GetCalendarsResponse] "Calendars"
// @Failure 500 {object} response.Error
// @Router /v1/calendars [get]
// @Security BearerAuth
func (handler *Handler) GetCalendars(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendars")
	defer scope.End()

	calendars, err := handler.service.ListCalendars(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list calendars")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, calendars)
}

// DisconnectCalendar removes a synced calendar and its busy intervals.
// @Summary Disconnect a calendar
// @Tags Calendar
// @Produce json
// @Param id path string true "Calendar ID"
// @Success 200 {object} response.Message "Calendar disconnected"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendars/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DisconnectCalendar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DisconnectCalendar")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.DisconnectCalendar(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to disconnect calendar")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Calendar disconnected successfully")
}

// PushBusy upserts busy intervals synced from an external calendar.
// @Summary Push busy intervals
// @Description Intervals are upserted by their source id. Internal sync jobs authenticate with X-API-Key.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param id path string true "Calendar ID"
// @Param request body dto.PushBusyRequest true "Busy intervals"
// @Success 200 {object} response.Data[dto.PushBusyResponse] "Upserted intervals"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendars/{id}/busy [post]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) PushBusy(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PushBusy")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.PushBusyRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpsertSynced(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("calendar", id).Msg("failed to push busy intervals")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBusy lists the owner's busy intervals overlapping a range.
// @Summary Get busy intervals
// @Tags Calendar
// @Produce json
// @Param from query string true "Range start (RFC 3339)"
// @Param to query string true "Range end (RFC 3339)"
// @Success 200 {object} response.Data[dto.GetBusyResponse] "Busy intervals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/busy [get]
// @Security BearerAuth
func (handler *Handler) GetBusy(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusy")
	defer scope.End()

	from, err := parseRangeParam(request, constant.RequestParamFrom)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	to, err := parseRangeParam(request, constant.RequestParamTo)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	busy, err := handler.service.ListBusy(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list busy intervals")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, busy)
}

func parseRangeParam(request *http.Request, name string) (time.Time, error) {
	value := request.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, failure.BadRequestFromString(name + " is required") //nolint:wrapcheck
	}

	parsed, err := timezone.ParseInstant(value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(name + " must be an ISO-8601 timestamp") //nolint:wrapcheck
	}

	return parsed, nil
}
