package availability

import (
	"net/http"
	"slotlink/infras/otel"
	"slotlink/internal/domains/availability/model/dto"
	"slotlink/internal/domains/availability/service"
	"slotlink/shared/constant"
	"slotlink/shared/validator"
	"slotlink/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AddWindows)
		routerGroup.Get("/", handler.GetWindows)
		routerGroup.Delete("/{id}", handler.RemoveWindow)
	})
}

// AddWindows adds weekly availability windows.
// @Summary Add availability windows
// @Description Add one or more recurring weekly windows for the authenticated owner.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.AddWindowsRequest true "Windows"
// @Success 201 {object} response.Data[dto.GetWindowsResponse] "Created windows"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [post]
// @Security BearerAuth
func (handler *Handler) AddWindows(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddWindows")
	defer scope.End()

	req := dto.AddWindowsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	windows, err := handler.service.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add availability windows")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, windows)
}

// GetWindows lists the owner's windows grouped by weekday.
// @Summary Get availability
// @Tags Availability
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetWindowsResponse] "Windows"
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
func (handler *Handler) GetWindows(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWindows")
	defer scope.End()

	windows, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list availability windows")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, windows)
}

// RemoveWindow deletes a single window.
// @Summary Remove an availability window
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Window ID"
// @Success 200 {object} response.Message "Window removed"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveWindow(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveWindow")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Remove(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to remove availability window")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Availability window removed successfully")
}
