package coupon

import (
	"net/http"
	"studio/infras/otel"
	"studio/internal/domains/coupon/model/dto"
	"studio/internal/domains/coupon/service"
	"studio/shared/constant"
	"studio/shared/validator"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Coupon
	otel    otel.Otel
}

func New(service service.Coupon, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/coupons", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCoupon)
		routerGroup.Post("/validate", handler.ValidateCoupon)
		routerGroup.Post("/referrals", handler.IssueReferral)
		routerGroup.Post("/{id}/redeem", handler.RedeemCoupon)
	})
}

// CreateCoupon issues a discount code.
// @Summary Create a coupon
// @Tags Coupon
// @Accept json
// @Produce json
// @Param request body dto.CreateCouponRequest true "Create Coupon Request"
// @Success 201 {object} response.Data[dto.CouponResponse] "Coupon created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons [post]
// @Security BearerAuth
func (handler *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCoupon")
	defer scope.End()

	req := dto.CreateCouponRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	coupon, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create coupon")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Coupon created " + coupon.Code)

	response.WithCreated(w, coupon)
}

// ValidateCoupon checks a code without consuming it. An unusable code is a
// 200 with valid=false and a reason.
// @Summary Validate a coupon
// @Tags Coupon
// @Accept json
// @Produce json
// @Param request body dto.ValidateCouponRequest true "Validate Coupon Request"
// @Success 200 {object} response.Data[dto.ValidationResult] "Validation result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/validate [post]
// @Security BearerAuth
func (handler *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidateCoupon")
	defer scope.End()

	req := dto.ValidateCouponRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.Validate(ctx, req.Code, req.ArtistID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate coupon")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, result)
}

// RedeemCoupon marks a coupon used by a client.
// @Summary Redeem a coupon
// @Tags Coupon
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body dto.RedeemCouponRequest true "Redeem Coupon Request"
// @Success 200 {object} response.Data[dto.RedeemResponse] "Coupon redeemed"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 410 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/{id}/redeem [post]
// @Security BearerAuth
func (handler *Handler) RedeemCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RedeemCoupon")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RedeemCouponRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Redeem(ctx, id, req.UsedByUserID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to redeem coupon")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Coupon redeemed by " + req.UsedByUserID)

	response.WithJSON(w, http.StatusOK, res)
}

// IssueReferral creates a single-use referral code for a client.
// @Summary Issue a referral coupon
// @Tags Coupon
// @Accept json
// @Produce json
// @Param request body dto.IssueReferralRequest true "Issue Referral Request"
// @Success 201 {object} response.Data[dto.CouponResponse] "Referral coupon issued"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/coupons/referrals [post]
// @Security BearerAuth
func (handler *Handler) IssueReferral(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IssueReferral")
	defer scope.End()

	req := dto.IssueReferralRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	coupon, err := handler.service.IssueReferral(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue referral coupon")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Referral coupon issued " + coupon.Code)

	response.WithCreated(w, coupon)
}
