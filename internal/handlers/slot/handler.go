package slot

import (
	"net/http"
	"studio/infras/otel"
	"studio/internal/domains/slot/model"
	"studio/internal/domains/slot/model/dto"
	"studio/internal/domains/slot/service"
	"studio/shared/constant"
	"studio/shared/validator"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Slot
	otel    otel.Otel
}

func New(service service.Slot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/slots", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSlot)
		routerGroup.Get("/available", handler.FindAvailable)
		routerGroup.Get("/board", handler.Board)
		routerGroup.Get("/{id}", handler.GetSlotByID)
		routerGroup.Get("/{id}/availability", handler.IsAvailable)
	})
}

// CreateSlot opens a station for a time window.
// @Summary Create a slot
// @Tags Slot
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotRequest true "Create Slot Request"
// @Success 201 {object} response.Data[dto.SlotResponse] "Slot created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots [post]
// @Security BearerAuth
func (handler *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSlot")
	defer scope.End()

	req := dto.CreateSlotRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	slot, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slot created " + slot.ID)

	response.WithCreated(w, slot)
}

// FindAvailable lists active, unbooked slots ordered by start time.
// @Summary Find available slots
// @Tags Slot
// @Produce json
// @Param station query int false "Station number"
// @Param from query string false "Earliest start (RFC 3339)"
// @Param to query string false "Latest end (RFC 3339)"
// @Param limit query int false "Maximum number of slots"
// @Success 200 {object} response.Data[dto.GetSlotsResponse] "Available slots"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots/available [get]
// @Security BearerAuth
func (handler *Handler) FindAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindAvailable")
	defer scope.End()

	criteria := dto.Criteria{}
	if err := criteria.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	slots := []model.Slot{}

	for slot, err := range handler.service.FindAvailable(ctx, criteria) {
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to find available slots")

			response.WithError(w, err)

			return
		}

		slots = append(slots, slot)
	}

	res := dto.GetSlotsResponse{}
	res.FromModels(slots)

	response.WithJSON(w, http.StatusOK, res)
}

// Board shows every slot in the window with its display status.
// @Summary Slot board
// @Tags Slot
// @Produce json
// @Param station query int false "Station number"
// @Param from query string false "Earliest start (RFC 3339)"
// @Param to query string false "Latest end (RFC 3339)"
// @Success 200 {object} response.Data[dto.BoardResponse] "Slot board"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots/board [get]
// @Security BearerAuth
func (handler *Handler) Board(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Board")
	defer scope.End()

	criteria := dto.Criteria{}
	if err := criteria.FromRequest(r); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	board, err := handler.service.Board(ctx, criteria)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build slot board")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, board)
}

// IsAvailable reports whether a slot can still be booked.
// @Summary Check slot availability
// @Tags Slot
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 500 {object} response.Error
// @Router /v1/slots/{id}/availability [get]
// @Security BearerAuth
func (handler *Handler) IsAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IsAvailable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	available, err := handler.service.IsAvailable(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check slot availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.AvailabilityResponse{SlotID: id, Available: available})
}

// GetSlotByID retrieves a slot.
// @Summary Get a slot
// @Tags Slot
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Data[dto.SlotResponse] "Slot"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSlotByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlotByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	slot, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slot by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slot)
}
