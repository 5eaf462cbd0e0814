package service_test

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"testing"
	"time"

	"studio/config"
	"studio/infras/otel/mocks"
	bookingModel "studio/internal/domains/booking/model"
	slotMocks "studio/internal/domains/slot/mocks"
	"studio/internal/domains/slot/model"
	"studio/internal/domains/slot/model/dto"
	"studio/internal/domains/slot/service"
	cacheMocks "studio/shared/cache/mocks"
	"studio/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Slot, *slotMocks.MockSlot, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func seqOf(slots ...model.Slot) iter.Seq2[model.Slot, error] {
	return func(yield func(model.Slot, error) bool) {
		for _, slot := range slots {
			if !yield(slot, nil) {
				return
			}
		}
	}
}

func TestSlotService_Create(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       dto.CreateSlotRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:      "end before start",
			req:       dto.CreateSlotRequest{Station: 1, StartTime: start, EndTime: start.Add(-time.Hour)},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "end equal to start",
			req:       dto.CreateSlotRequest{Station: 1, StartTime: start, EndTime: start},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "successful creation",
			req:  dto.CreateSlotRequest{Station: 2, StartTime: start, EndTime: start.Add(2 * time.Hour)},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, slot model.Slot) error {
						assert.Equal(t, 2, slot.Station)
						assert.True(t, slot.IsActive)

						return nil
					})
			},
		},
		{
			name: "repository error",
			req:  dto.CreateSlotRequest{Station: 2, StartTime: start, EndTime: start.Add(time.Hour)},
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestSlotService_IsAvailable(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		want      bool
		wantCode  int
	}{
		{
			name: "unknown slot",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "inactive slot is never available",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{ID: "slot-1"}, nil)
			},
			want: false,
		},
		{
			name: "held by an active booking",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{ID: "slot-1", IsActive: true}, nil)
				mockRepo.EXPECT().IsAvailable(gomock.Any(), "slot-1").Return(false, nil)
			},
			want: false,
		},
		{
			name: "free",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{ID: "slot-1", IsActive: true}, nil)
				mockRepo.EXPECT().IsAvailable(gomock.Any(), "slot-1").Return(true, nil)
			},
			want: true,
		},
		{
			name: "storage error",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{ID: "slot-1", IsActive: true}, nil)
				mockRepo.EXPECT().IsAvailable(gomock.Any(), "slot-1").Return(false, failure.Storage(errors.New("conn reset")))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			available, err := svc.IsAvailable(context.Background(), "slot-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, available)
		})
	}
}

func TestSlotService_FindAvailable(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	criteria := dto.Criteria{Station: 3}
	mockRepo.EXPECT().
		FindAvailable(gomock.Any(), criteria).
		Return(seqOf(model.Slot{ID: "a"}, model.Slot{ID: "b"}, model.Slot{ID: "c"}))

	var ids []string

	for slot, err := range svc.FindAvailable(context.Background(), criteria) {
		require.NoError(t, err)

		ids = append(ids, slot.ID)
		if len(ids) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestSlotService_Board(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	open := string(bookingModel.StatusOpen)
	confirmed := string(bookingModel.StatusConfirmed)
	bookingID := "booking-1"

	t.Run("maps bookings to display status", func(t *testing.T) {
		mockRepo.EXPECT().
			Board(gomock.Any(), gomock.Any()).
			Return([]model.BoardEntry{
				{Slot: model.Slot{ID: "free"}},
				{Slot: model.Slot{ID: "reserved"}, BookingID: &bookingID, BookingStatus: &open},
				{Slot: model.Slot{ID: "occupied"}, BookingID: &bookingID, BookingStatus: &confirmed},
			}, nil)

		res, err := svc.Board(context.Background(), dto.Criteria{})
		require.NoError(t, err)
		require.Len(t, res.Slots, 3)

		assert.Equal(t, model.DisplayAvailable, res.Slots[0].Status)
		assert.Equal(t, model.DisplayReserved, res.Slots[1].Status)
		assert.Equal(t, model.DisplayOccupied, res.Slots[2].Status)
		assert.Nil(t, res.Slots[0].BookingID)
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		now := time.Now()

		_, err := svc.Board(context.Background(), dto.Criteria{From: now, To: now.Add(-time.Hour)})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
