package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"studio/config"
	kafkaMocks "studio/infras/kafka/mocks"
	"studio/infras/otel/mocks"
	postgresMocks "studio/infras/postgres/mocks"
	artistMocks "studio/internal/domains/artist/mocks"
	artistModel "studio/internal/domains/artist/model"
	bookingMocks "studio/internal/domains/booking/mocks"
	"studio/internal/domains/booking/model"
	"studio/internal/domains/booking/model/dto"
	"studio/internal/domains/booking/service"
	"studio/internal/domains/commission"
	couponMocks "studio/internal/domains/coupon/mocks"
	couponDto "studio/internal/domains/coupon/model/dto"
	slotMocks "studio/internal/domains/slot/mocks"
	slotModel "studio/internal/domains/slot/model"
	cacheMocks "studio/shared/cache/mocks"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	now       = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	slotStart = time.Date(2026, 5, 12, 14, 0, 0, 0, time.UTC)
	errDB     = errors.New("connection reset")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.MinimumValue = 400
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.BookingCreated = "booking.created"
	cfg.Kafka.Topics.BookingStatusChanged = "booking.status_changed"

	return cfg
}

type fixture struct {
	svc        service.Booking
	repo       *bookingMocks.MockBooking
	artistRepo *artistMocks.MockArtist
	slotRepo   *slotMocks.MockSlot
	coupons    *couponMocks.MockCouponService
	cache      *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		artistRepo: artistMocks.NewMockArtist(ctrl),
		slotRepo:   slotMocks.NewMockSlot(ctrl),
		coupons:    couponMocks.NewMockCouponService(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	producer := kafkaMocks.NewMockClient(ctrl)
	producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(
		f.repo, f.artistRepo, f.slotRepo, f.coupons,
		postgresMocks.NewTransactor(), producer, testConfig(), f.cache, mocks.NewOtel(),
		timezone.FixedClock(now), commission.DefaultPolicy(),
	)

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "client-1")
}

func resident(earnings string) artistModel.Artist {
	return artistModel.Artist{ID: "artist-1", Plan: artistModel.PlanResident, MonthlyEarnings: dec(earnings), IsActive: true}
}

func guest() artistModel.Artist {
	return artistModel.Artist{ID: "artist-1", Plan: artistModel.PlanGuest, MonthlyEarnings: decimal.Zero, IsActive: true}
}

func openSlot() slotModel.Slot {
	return slotModel.Slot{ID: "slot-1", Station: 2, StartTime: slotStart, EndTime: slotStart.Add(2 * time.Hour), IsActive: true}
}

func request(value string, coupon string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{ArtistID: "artist-1", SlotID: "slot-1", Value: dec(value), CouponCode: coupon}
}

func (f fixture) expectLocks(artist artistModel.Artist) {
	f.artistRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(artist, nil)
	f.slotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openSlot(), nil)
	f.slotRepo.EXPECT().IsAvailableTx(gomock.Any(), gomock.Any(), "slot-1").Return(true, nil)
}

func (f fixture) expectEarnings(t *testing.T, want string) {
	f.artistRepo.EXPECT().
		IncrementEarningsTx(gomock.Any(), gomock.Any(), "artist-1", gomock.Any(), now).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, amount decimal.Decimal, _ time.Time) error {
			assert.Truef(t, amount.Equal(dec(want)), "credited %s, want %s", amount, want)

			return nil
		})
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()

	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestCreate_CommissionTiers(t *testing.T) {
	tests := []struct {
		name     string
		artist   artistModel.Artist
		rate     string
		artistSh string
		studioSh string
	}{
		{name: "resident initial tier", artist: resident("0"), rate: "0.30", artistSh: "700", studioSh: "300"},
		{name: "resident reduced tier", artist: resident("10000"), rate: "0.20", artistSh: "800", studioSh: "200"},
		{name: "override wins", artist: artistModel.Artist{ID: "artist-1", Plan: artistModel.PlanGuest, CommissionRate: ptr(dec("0.10")), IsActive: true}, rate: "0.10", artistSh: "900", studioSh: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.expectLocks(tt.artist)
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.expectEarnings(t, tt.artistSh)

			res, err := f.svc.Create(userContext(), request("1000", ""))
			require.NoError(t, err)

			assertDecimal(t, tt.rate, res.CommissionRate)
			assertDecimal(t, tt.artistSh, res.ArtistShare)
			assertDecimal(t, tt.studioSh, res.StudioShare)
			assertDecimal(t, "1000", res.FinalValue)
			assert.Equal(t, model.StatusOpen, res.Status)
			assert.Equal(t, "client-1", res.ClientID)
			assert.Equal(t, 120, res.Duration)
			assert.Empty(t, res.CouponRejection)
		})
	}
}

func TestCreate_GuestWithCoupon(t *testing.T) {
	f := newFixture(t)
	f.expectLocks(guest())

	coupon := couponDto.ValidationResult{Valid: true, Code: "SUMMER10", DiscountPercent: 10, CouponID: "coupon-1"}
	f.coupons.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "summer10", "artist-1").Return(coupon, nil)

	var stored model.Booking

	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			stored = booking

			return nil
		})
	f.coupons.EXPECT().RedeemTx(gomock.Any(), gomock.Any(), coupon, "client-1").Return(nil)
	f.expectEarnings(t, "315")

	res, err := f.svc.Create(userContext(), request("500", "summer10"))
	require.NoError(t, err)

	assertDecimal(t, "50", res.DiscountValue)
	assertDecimal(t, "450", res.FinalValue)
	assertDecimal(t, "135", res.StudioShare)
	assertDecimal(t, "315", res.ArtistShare)
	assert.Equal(t, ptr("coupon-1"), res.CouponID)
	assert.Equal(t, ptr("SUMMER10"), stored.CouponCode)
	assert.True(t, stored.ArtistShare.Add(stored.StudioShare).Equal(stored.FinalValue))
	assert.True(t, stored.Value.Sub(stored.DiscountValue).Equal(stored.FinalValue))
	assert.Equal(t, slotStart, stored.ScheduledFor)
}

func TestCreate_LeadCouponIsNotRedeemed(t *testing.T) {
	f := newFixture(t)
	f.expectLocks(guest())

	lead := couponDto.ValidationResult{Valid: true, Code: "KRONOS10_ANA", DiscountPercent: 10, Lead: true}
	f.coupons.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "KRONOS10_ANA", "artist-1").Return(lead, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.expectEarnings(t, "315")

	res, err := f.svc.Create(userContext(), request("500", "KRONOS10_ANA"))
	require.NoError(t, err)

	assert.Nil(t, res.CouponID)
	assert.Equal(t, ptr("KRONOS10_ANA"), res.CouponCode)
	assertDecimal(t, "450", res.FinalValue)
}

func TestCreate_RejectedCouponIsSkipped(t *testing.T) {
	reasons := []string{couponDto.ReasonNotFound, couponDto.ReasonInactive, couponDto.ReasonExpired, couponDto.ReasonWrongArtist}

	for _, reason := range reasons {
		t.Run(reason, func(t *testing.T) {
			f := newFixture(t)
			f.expectLocks(guest())
			f.coupons.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "X", "artist-1").Return(couponDto.Rejected("X", reason), nil)
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.expectEarnings(t, "350")

			res, err := f.svc.Create(userContext(), request("500", "X"))
			require.NoError(t, err)

			assert.Equal(t, reason, res.CouponRejection)
			assertDecimal(t, "0", res.DiscountValue)
			assertDecimal(t, "500", res.FinalValue)
			assert.Nil(t, res.CouponCode)
		})
	}
}

func TestCreate_Failures(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   error
	}{
		{
			name:      "below minimum value",
			req:       request("399.99", ""),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "artist not found",
			req:  request("1000", ""),
			setupMock: func(f fixture) {
				f.artistRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(artistModel.Artist{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "artist inactive",
			req:  request("1000", ""),
			setupMock: func(f fixture) {
				f.artistRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(artistModel.Artist{ID: "artist-1", Plan: artistModel.PlanGuest}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "slot not found",
			req:  request("1000", ""),
			setupMock: func(f fixture) {
				f.artistRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guest(), nil)
				f.slotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(slotModel.Slot{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "slot inactive",
			req:  request("1000", ""),
			setupMock: func(f fixture) {
				slot := openSlot()
				slot.IsActive = false

				f.artistRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guest(), nil)
				f.slotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(slot, nil)
			},
			wantErr: failure.SlotConflict,
		},
		{
			name: "slot already booked",
			req:  request("1000", ""),
			setupMock: func(f fixture) {
				f.artistRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guest(), nil)
				f.slotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openSlot(), nil)
				f.slotRepo.EXPECT().IsAvailableTx(gomock.Any(), gomock.Any(), "slot-1").Return(false, nil)
			},
			wantErr: failure.SlotConflict,
		},
		{
			name: "unique index race",
			req:  request("1000", ""),
			setupMock: func(f fixture) {
				f.expectLocks(guest())
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.SlotConflict)
			},
			wantErr: failure.SlotConflict,
		},
		{
			name: "coupon storage error aborts",
			req:  request("1000", "SUMMER10"),
			setupMock: func(f fixture) {
				f.expectLocks(guest())
				f.coupons.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "SUMMER10", "artist-1").
					Return(couponDto.ValidationResult{}, failure.Storage(errDB))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "coupon consumed concurrently",
			req:  request("1000", "SUMMER10"),
			setupMock: func(f fixture) {
				coupon := couponDto.ValidationResult{Valid: true, Code: "SUMMER10", DiscountPercent: 10, CouponID: "coupon-1"}

				f.expectLocks(guest())
				f.coupons.EXPECT().ResolveTx(gomock.Any(), gomock.Any(), "SUMMER10", "artist-1").Return(coupon, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.coupons.EXPECT().RedeemTx(gomock.Any(), gomock.Any(), coupon, "client-1").Return(failure.CouponAlreadyUsed)
			},
			wantErr: failure.CouponAlreadyUsed,
		},
		{
			name: "earnings credit fails",
			req:  request("1000", ""),
			setupMock: func(f fixture) {
				f.expectLocks(guest())
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.artistRepo.EXPECT().IncrementEarningsTx(gomock.Any(), gomock.Any(), "artist-1", gomock.Any(), gomock.Any()).Return(failure.Storage(errDB))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(userContext(), tt.req)
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestCreate_RequiresClient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), request("1000", ""))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     model.Status
		to       model.Status
		wantErr  error
		wantCall bool
	}{
		{name: "confirm open", from: model.StatusOpen, to: model.StatusConfirmed, wantCall: true},
		{name: "cancel open", from: model.StatusOpen, to: model.StatusCancelled, wantCall: true},
		{name: "complete confirmed", from: model.StatusConfirmed, to: model.StatusCompleted, wantCall: true},
		{name: "cancel confirmed", from: model.StatusConfirmed, to: model.StatusCancelled, wantCall: true},
		{name: "complete open", from: model.StatusOpen, to: model.StatusCompleted, wantErr: failure.InvalidTransition},
		{name: "reopen completed", from: model.StatusCompleted, to: model.StatusOpen, wantErr: failure.InvalidTransition},
		{name: "cancel completed", from: model.StatusCompleted, to: model.StatusCancelled, wantErr: failure.InvalidTransition},
		{name: "confirm cancelled", from: model.StatusCancelled, to: model.StatusConfirmed, wantErr: failure.InvalidTransition},
		{name: "same status", from: model.StatusOpen, to: model.StatusOpen, wantErr: failure.InvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			booking := model.Booking{ID: "booking-1", ArtistID: "artist-1", Status: tt.from, ArtistShare: dec("700")}
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)

			if tt.wantCall {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.to, fields[model.FieldStatus])
						assert.Equal(t, now, fields[constant.FieldModifiedAt])
						assert.NotContains(t, fields, model.FieldArtistShare)

						return nil
					})
			}

			res, err := f.svc.Transition(userContext(), "booking-1", dto.TransitionRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, res.Status)
			assertDecimal(t, "700", res.ArtistShare)
			assert.Equal(t, timezone.Format(now, constant.DateFormat), res.ModifiedAt)
		})
	}
}

func TestTransition_ErrorNamesTheStatuses(t *testing.T) {
	tests := []struct {
		name    string
		from    model.Status
		to      model.Status
		wantMsg string
	}{
		{name: "terminal", from: model.StatusCancelled, to: model.StatusOpen, wantMsg: "booking is already CANCELLED"},
		{name: "skipping a step", from: model.StatusOpen, to: model.StatusCompleted, wantMsg: "cannot move booking from OPEN to COMPLETED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(model.Booking{ID: "booking-1", Status: tt.from}, nil)

			_, err := f.svc.Transition(userContext(), "booking-1", dto.TransitionRequest{Status: tt.to})
			require.ErrorIs(t, err, failure.InvalidTransition)
			assert.ErrorContains(t, err, tt.wantMsg)
			assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		})
	}
}

func TestTransition_NotFound(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.Transition(userContext(), "missing", dto.TransitionRequest{Status: model.StatusConfirmed})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestGet(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "booking:get:booking-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.BookingResponse)
				res.ID = "booking-1"

				return nil
			})

		res, err := f.svc.Get(userContext(), "booking-1")
		require.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("from store", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", Status: model.StatusOpen}, nil)

		res, err := f.svc.Get(userContext(), "booking-1")
		require.NoError(t, err)
		assert.Equal(t, model.StatusOpen, res.Status)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(userContext(), "booking-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGetAll(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))

	req := dto.ListRequest{
		QueryParams: gDto.QueryParams{Page: 1, Limit: 2},
		ArtistID:    "artist-1",
		Status:      model.StatusOpen,
	}

	f.repo.EXPECT().Count(gomock.Any(), req.Filter()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), req.QueryParams, req.Filter()).
		Return([]model.Booking{{ID: "b-1"}, {ID: "b-2"}}, nil)

	res, err := f.svc.GetAll(userContext(), req)
	require.NoError(t, err)

	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestGetAll_CountError(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errDB)

	_, err := f.svc.GetAll(userContext(), dto.ListRequest{})
	assert.ErrorIs(t, err, errDB)
}
