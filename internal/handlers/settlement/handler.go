package settlement

import (
	"net/http"
	"studio/infras/otel"
	"studio/internal/domains/settlement/model/dto"
	"studio/internal/domains/settlement/service"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/shared/validator"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Settlement
	otel    otel.Otel
}

func New(service service.Settlement, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settlements", func(routerGroup chi.Router) {
		routerGroup.Get("/eligible", handler.PendingRevenue)
		routerGroup.Post("/", handler.CreateSettlement)
		routerGroup.Post("/proofs", handler.UploadProof)
		routerGroup.Get("/{id}", handler.GetSettlementByID)
		routerGroup.Patch("/{id}/review", handler.ReviewSettlement)
	})
}

// PendingRevenue lists the bookings an artist can settle now.
// @Summary List eligible bookings
// @Description Unsettled bookings that are COMPLETED, or not CANCELLED and past their slot end, with the artist share total.
// @Tags Settlement
// @Produce json
// @Param artist_id query string true "Artist ID"
// @Success 200 {object} response.Data[dto.PendingRevenueResponse] "Eligible bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settlements/eligible [get]
// @Security BearerAuth
func (handler *Handler) PendingRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PendingRevenue")
	defer scope.End()

	artistID := r.URL.Query().Get(constant.RequestParamArtistID)
	if err := validator.ValidateVar(artistID, "required,uuid"); err != nil {
		response.WithError(w, failure.BadRequestFromString("artist_id must be a valid UUID"))

		return
	}

	res, err := handler.service.PendingRevenue(ctx, artistID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list eligible bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateSettlement requests payout of eligible bookings.
// @Summary Create a settlement
// @Description Attaches the bookings and queues proof validation. The settlement starts PENDING.
// @Tags Settlement
// @Accept json
// @Produce json
// @Param request body dto.CreateSettlementRequest true "Create Settlement Request"
// @Success 201 {object} response.Data[dto.SettlementResponse] "Settlement created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "A booking is already settled or not eligible"
// @Failure 500 {object} response.Error
// @Router /v1/settlements [post]
// @Security BearerAuth
func (handler *Handler) CreateSettlement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSettlement")
	defer scope.End()

	req := dto.CreateSettlementRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	settlement, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create settlement")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Settlement " + settlement.ID + " created by user " + user)

	response.WithCreated(w, settlement)
}

// UploadProof stores a proof of payment.
// @Summary Upload a settlement proof
// @Description Upload a PNG, JPEG, WEBP or PDF up to 10 MB. Pass the returned URL as proof_url.
// @Tags Settlement
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Proof file"
// @Success 200 {object} response.Data[dto.UploadProofResponse] "Proof uploaded"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settlements/proofs [post]
// @Security BearerAuth
func (handler *Handler) UploadProof(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadProof")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadProofRequest{
		Proof:     fileHeader,
		ProofFile: file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadProof(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload settlement proof")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Settlement proof uploaded by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// GetSettlementByID retrieves a settlement with its bookings.
// @Summary Get a settlement by ID
// @Tags Settlement
// @Produce json
// @Param id path string true "Settlement ID"
// @Success 200 {object} response.Data[dto.SettlementResponse] "Settlement details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settlements/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSettlementByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettlementByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	settlement, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get settlement by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settlement)
}

// ReviewSettlement records a manual decision.
// @Summary Review a settlement
// @Description Approve or reject a settlement that is PENDING or in REVIEW.
// @Tags Settlement
// @Accept json
// @Produce json
// @Param id path string true "Settlement ID"
// @Param request body dto.ReviewRequest true "Review Request"
// @Success 200 {object} response.Data[dto.SettlementResponse] "Settlement reviewed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Settlement already decided"
// @Failure 500 {object} response.Error
// @Router /v1/settlements/{id}/review [patch]
// @Security BearerAuth
func (handler *Handler) ReviewSettlement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReviewSettlement")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ReviewRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	settlement, err := handler.service.Review(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to review settlement")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Settlement " + id + " reviewed by user " + user)

	response.WithJSON(w, http.StatusOK, settlement)
}
