package artist

import (
	"net/http"
	"studio/infras/otel"
	"studio/internal/domains/artist/model/dto"
	"studio/internal/domains/artist/service"
	"studio/shared/constant"
	"studio/shared/validator"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Artist
	otel    otel.Otel
}

func New(service service.Artist, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/artists", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateArtist)
		routerGroup.Get("/{id}", handler.GetArtistByID)
		routerGroup.Patch("/{id}/settings", handler.UpdateSettings)
	})
}

// CreateArtist registers an artist.
// @Summary Create an artist
// @Description Register an artist on a GUEST or RESIDENT plan, optionally with a commission override.
// @Tags Artist
// @Accept json
// @Produce json
// @Param request body dto.CreateArtistRequest true "Create Artist Request"
// @Success 201 {object} response.Data[dto.ArtistResponse] "Artist created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/artists [post]
// @Security BearerAuth
func (handler *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateArtist")
	defer scope.End()

	req := dto.CreateArtistRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	artist, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create artist")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Artist created " + artist.ID)

	response.WithCreated(w, artist)
}

// GetArtistByID retrieves an artist with the rate that applies to the next booking.
// @Summary Get an artist by ID
// @Tags Artist
// @Produce json
// @Param id path string true "Artist ID"
// @Success 200 {object} response.Data[dto.ArtistResponse] "Artist details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/artists/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetArtistByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetArtistByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	artist, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get artist by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Artist retrieved successfully")

	response.WithJSON(w, http.StatusOK, artist)
}

// UpdateSettings changes an artist's plan, commission override or activity.
// @Summary Update artist settings
// @Tags Artist
// @Accept json
// @Produce json
// @Param id path string true "Artist ID"
// @Param request body dto.UpdateSettingsRequest true "Update Settings Request"
// @Success 200 {object} response.Message "Artist settings updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/artists/{id}/settings [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSettings")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateSettingsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateSettings(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update artist settings")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Artist settings updated by user " + user)

	response.WithMessage(w, http.StatusOK, "Artist settings updated successfully")
}
