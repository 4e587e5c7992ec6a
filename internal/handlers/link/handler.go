package link

import (
	"net/http"
	"slotlink/infras/otel"
	"slotlink/internal/domains/link/model/dto"
	"slotlink/internal/domains/link/service"
	"slotlink/shared/constant"
	gDto "slotlink/shared/dto"
	"slotlink/shared/validator"
	"slotlink/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Link
	otel    otel.Otel
}

func New(service service.Link, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/links", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLink)
		routerGroup.Get("/", handler.GetLinks)
		routerGroup.Get("/{id}", handler.GetLink)
		routerGroup.Patch("/{id}", handler.UpdateLink)
		routerGroup.Delete("/{id}", handler.DeleteLink)
		routerGroup.Post("/{id}/uses", handler.IncrementUsage)
	})
}

// CreateLink handles the creation of a scheduling link.
// @Summary Create a scheduling link
// @Description Create a shareable booking link. The slug is derived from the name when omitted.
// @Tags Link
// @Accept json
// @Produce json
// @Param request body dto.CreateLinkRequest true "Create Link Request"
// @Success 201 {object} response.Data[dto.LinkResponse] "Link created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/links [post]
// @Security BearerAuth
func (handler *Handler) CreateLink(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLink")
	defer scope.End()

	req := dto.CreateLinkRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	link, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create link")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Link created " + link.ID)

	response.WithJSON(writer, http.StatusCreated, link)
}

// GetLinks lists the owner's links.
// @Summary Get links
// @Description Retrieve the authenticated owner's links with pagination.
// @Tags Link
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetLinksResponse] "List of links"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/links [get]
// @Security BearerAuth
func (handler *Handler) GetLinks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLinks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	links, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get links")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, links)
}

// GetLink retrieves a link by its ID.
// @Summary Get a link by ID
// @Tags Link
// @Accept json
// @Produce json
// @Param id path string true "Link ID"
// @Success 200 {object} response.Data[dto.LinkResponse] "Link details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/links/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetLink(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLink")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	link, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get link")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, link)
}

// UpdateLink updates an existing link.
// @Summary Update a link by ID
// @Description Update the mutable fields of a link. Max uses cannot drop below the current uses.
// @Tags Link
// @Accept json
// @Produce json
// @Param id path string true "Link ID"
// @Param request body dto.UpdateLinkRequest true "Update Link Request"
// @Success 200 {object} response.Message "Link updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/links/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateLink(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLink")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateLinkRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update link")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Link updated successfully")
}

// DeleteLink deletes a link. Bookings made through it are kept.
// @Summary Delete a link by ID
// @Tags Link
// @Accept json
// @Produce json
// @Param id path string true "Link ID"
// @Success 200 {object} response.Message "Link deleted successfully"
// @Failure 500 {object} response.Error
// @Router /v1/links/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLink(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLink")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete link")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Link deleted successfully")
}

// IncrementUsage consumes one use of a link outside of a booking.
// @Summary Increment link usage
// @Tags Link
// @Accept json
// @Produce json
// @Param id path string true "Link ID"
// @Success 200 {object} response.Data[dto.UsageResponse] "Uses after increment"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/links/{id}/uses [post]
// @Security BearerAuth
func (handler *Handler) IncrementUsage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IncrementUsage")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	usage, err := handler.service.IncrementUsage(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to increment link usage")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, usage)
}
