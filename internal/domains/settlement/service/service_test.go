package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"testing"
	"time"

	"studio/config"
	kafkaMocks "studio/infras/kafka/mocks"
	"studio/infras/otel/mocks"
	postgresMocks "studio/infras/postgres/mocks"
	s3Mocks "studio/infras/s3/mocks"
	artistMocks "studio/internal/domains/artist/mocks"
	bookingMocks "studio/internal/domains/booking/mocks"
	bookingModel "studio/internal/domains/booking/model"
	bookingRepo "studio/internal/domains/booking/repository"
	settlementMocks "studio/internal/domains/settlement/mocks"
	"studio/internal/domains/settlement/model"
	"studio/internal/domains/settlement/model/dto"
	"studio/internal/domains/settlement/service"
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
	now   = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	errDB = errors.New("connection reset")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.SettlementCreated = "settlement.created"
	cfg.Kafka.Topics.SettlementValidated = "settlement.validated"
	cfg.Settlement.ApprovalThreshold = 0.9
	cfg.Settlement.ProofDirectory = "settlements"
	cfg.Settlement.Worker.MaxAttempts = 5
	cfg.Settlement.Worker.BackoffSeconds = 30
	cfg.Settlement.Worker.TimeoutSeconds = 20

	return cfg
}

type fixture struct {
	svc         service.Settlement
	repo        *settlementMocks.MockSettlement
	jobRepo     *settlementMocks.MockJob
	bookingRepo *bookingMocks.MockBooking
	artistRepo  *artistMocks.MockArtist
	validator   *settlementMocks.MockProofValidator
	storage     *s3Mocks.MockS3
	cache       *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        settlementMocks.NewMockSettlement(ctrl),
		jobRepo:     settlementMocks.NewMockJob(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		artistRepo:  artistMocks.NewMockArtist(ctrl),
		validator:   settlementMocks.NewMockProofValidator(ctrl),
		storage:     s3Mocks.NewMockS3(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	producer := kafkaMocks.NewMockClient(ctrl)
	producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(
		f.repo, f.jobRepo, f.bookingRepo, f.artistRepo, f.validator, f.storage,
		postgresMocks.NewTransactor(), producer, testConfig(), f.cache, mocks.NewOtel(),
		timezone.FixedClock(now),
	)

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "artist-user")
}

func (f fixture) expectArtist(exist bool) {
	f.artistRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(exist, nil)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()

	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestPendingRevenue(t *testing.T) {
	f := newFixture(t)
	f.expectArtist(true)

	f.bookingRepo.EXPECT().ListEligible(gomock.Any(), "artist-1", now).Return([]bookingModel.Booking{
		{ID: "b1", ArtistID: "artist-1", ArtistShare: dec("700"), Status: bookingModel.StatusCompleted},
		{ID: "b2", ArtistID: "artist-1", ArtistShare: dec("315.50"), Status: bookingModel.StatusConfirmed},
	}, nil)

	res, err := f.svc.PendingRevenue(context.Background(), "artist-1")

	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Len(t, res.Bookings, 2)
	assertDecimal(t, "1015.50", res.TotalArtistShare)
}

func TestPendingRevenue_UnknownArtist(t *testing.T) {
	f := newFixture(t)
	f.expectArtist(false)

	_, err := f.svc.PendingRevenue(context.Background(), "artist-9")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func createRequest(ids ...string) dto.CreateSettlementRequest {
	return dto.CreateSettlementRequest{
		ArtistID:   "artist-1",
		BookingIDs: ids,
		ProofURL:   "https://cdn.example.com/settlements/proof.pdf",
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	f.expectArtist(true)

	var settlementID string

	f.bookingRepo.EXPECT().
		AttachSettlementTx(gomock.Any(), gomock.Any(), gomock.Any(), "artist-1", []string{"b1", "b2"}, now).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, id, _ string, _ []string, _ time.Time) (bookingRepo.Attached, error) {
			settlementID = id

			return bookingRepo.Attached{Count: 2, ArtistShare: dec("1015.50")}, nil
		})

	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, settlement model.Settlement) error {
			assert.Equal(t, settlementID, settlement.ID)
			assert.Equal(t, model.StatusPending, settlement.Status)
			assertDecimal(t, "1015.50", settlement.TotalValue)

			return nil
		})

	f.jobRepo.EXPECT().EnqueueTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, job model.Job) error {
			assert.Equal(t, settlementID, job.SettlementID)
			assert.Equal(t, model.JobPending, job.Status)
			assert.Equal(t, 5, job.MaxAttempts)
			assert.Equal(t, now, job.NextRunAt)

			return nil
		})

	res, err := f.svc.Create(userContext(), createRequest("b1", "b2", "b1"))

	require.NoError(t, err)
	assert.Equal(t, settlementID, res.ID)
	assert.Equal(t, model.StatusPending, res.Status)
	assertDecimal(t, "1015.50", res.TotalValue)
}

func TestCreate_MatchingTotal(t *testing.T) {
	f := newFixture(t)
	f.expectArtist(true)

	f.bookingRepo.EXPECT().AttachSettlementTx(gomock.Any(), gomock.Any(), gomock.Any(), "artist-1", []string{"b1"}, now).
		Return(bookingRepo.Attached{Count: 1, ArtistShare: dec("700")}, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.jobRepo.EXPECT().EnqueueTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	req := createRequest("b1")
	total := dec("700.00")
	req.TotalValue = &total

	_, err := f.svc.Create(userContext(), req)

	require.NoError(t, err)
}

func TestCreate_Failures(t *testing.T) {
	mismatch := dec("650")

	tests := []struct {
		name      string
		total     *decimal.Decimal
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "artist not found",
			setupMock: func(f fixture) {
				f.expectArtist(false)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "a booking is already settled",
			setupMock: func(f fixture) {
				f.expectArtist(true)
				f.bookingRepo.EXPECT().AttachSettlementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingRepo.Attached{Count: 1, ArtistShare: dec("700")}, nil)
			},
			wantErr:  failure.AlreadySettled,
			wantCode: http.StatusConflict,
		},
		{
			name:  "total does not match the bookings",
			total: &mismatch,
			setupMock: func(f fixture) {
				f.expectArtist(true)
				f.bookingRepo.EXPECT().AttachSettlementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingRepo.Attached{Count: 2, ArtistShare: dec("1015.50")}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "bookings carry no artist share",
			setupMock: func(f fixture) {
				f.expectArtist(true)
				f.bookingRepo.EXPECT().AttachSettlementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingRepo.Attached{Count: 2, ArtistShare: decimal.Zero}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "attach fails",
			setupMock: func(f fixture) {
				f.expectArtist(true)
				f.bookingRepo.EXPECT().AttachSettlementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingRepo.Attached{}, failure.Storage(errDB))
			},
			wantErr:  errDB,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "enqueue fails",
			setupMock: func(f fixture) {
				f.expectArtist(true)
				f.bookingRepo.EXPECT().AttachSettlementTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingRepo.Attached{Count: 2, ArtistShare: dec("1015.50")}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.jobRepo.EXPECT().EnqueueTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.Storage(errDB))
			},
			wantErr:  errDB,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			req := createRequest("b1", "b2")
			req.TotalValue = tt.total

			_, err := f.svc.Create(userContext(), req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Run("loads settlement with its bookings", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "settlement:get:s1", gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Settlement{
			ID: "s1", ArtistID: "artist-1", TotalValue: dec("700"), Status: model.StatusReview,
		}, nil)
		f.bookingRepo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).
			Return([]bookingModel.Booking{{ID: "b1", ArtistShare: dec("700")}}, nil)

		res, err := f.svc.Get(context.Background(), "s1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusReview, res.Status)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "b1", res.Bookings[0].ID)
	})

	t.Run("served from cache", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "settlement:get:s1", gomock.Any()).Return(nil)

		_, err := f.svc.Get(context.Background(), "s1")

		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Settlement{}, nil)

		_, err := f.svc.Get(context.Background(), "s9")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReview(t *testing.T) {
	tests := []struct {
		name     string
		current  model.Status
		next     model.Status
		wantErr  error
		wantCode int
	}{
		{name: "approve pending", current: model.StatusPending, next: model.StatusApproved},
		{name: "reject under review", current: model.StatusReview, next: model.StatusRejected},
		{name: "approved is final", current: model.StatusApproved, next: model.StatusRejected, wantErr: failure.InvalidTransition, wantCode: http.StatusConflict},
		{name: "rejected is final", current: model.StatusRejected, next: model.StatusApproved, wantErr: failure.InvalidTransition, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(model.Settlement{ID: "s1", Status: tt.current}, nil)

			if tt.wantErr == nil {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.next, fields[model.FieldStatus])
						assert.Equal(t, "checked bank slip", fields[model.FieldReviewNote])
						assert.Equal(t, "artist-user", fields[model.FieldReviewedBy])

						return nil
					})
			}

			res, err := f.svc.Review(userContext(), "s1", dto.ReviewRequest{Status: tt.next, Note: "checked bank slip"})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.next, res.Status)
			require.NotNil(t, res.ReviewedBy)
			assert.Equal(t, "artist-user", *res.ReviewedBy)
		})
	}
}

func TestReview_NotFound(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Settlement{}, nil)

	_, err := f.svc.Review(userContext(), "s9", dto.ReviewRequest{Status: model.StatusApproved})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestClaimJobs(t *testing.T) {
	f := newFixture(t)

	jobs := []model.Job{{ID: "j1", SettlementID: "s1", Attempts: 1, MaxAttempts: 5}}
	f.jobRepo.EXPECT().Claim(gomock.Any(), now, now.Add(40*time.Second), 10).Return(jobs, nil)

	got, err := f.svc.ClaimJobs(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, jobs, got)
}

func pendingSettlement() model.Settlement {
	return model.Settlement{ID: "s1", ArtistID: "artist-1", Status: model.StatusPending, ProofURL: "https://cdn.example.com/settlements/p.pdf"}
}

func TestProcessJob_AppliesVerdict(t *testing.T) {
	tests := []struct {
		name    string
		verdict model.Verdict
		want    model.Status
	}{
		{name: "confident approval", verdict: model.Verdict{Approved: true, Confidence: 0.95, Feedback: "matches"}, want: model.StatusApproved},
		{name: "approval at threshold", verdict: model.Verdict{Approved: true, Confidence: 0.9}, want: model.StatusApproved},
		{name: "weak approval", verdict: model.Verdict{Approved: true, Confidence: 0.65}, want: model.StatusReview},
		{name: "needs review", verdict: model.Verdict{Confidence: 0.65, Feedback: "Needs human review"}, want: model.StatusReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			job := model.Job{ID: "j1", SettlementID: "s1", Attempts: 1, MaxAttempts: 5}

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingSettlement(), nil)
			f.validator.EXPECT().Validate(gomock.Any(), pendingSettlement()).Return(tt.verdict, nil)
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pendingSettlement(), nil)
			f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, tt.want, fields[model.FieldStatus])
					assert.InDelta(t, tt.verdict.Confidence, fields[model.FieldConfidence], 1e-9)
					assert.Equal(t, now, fields[model.FieldValidatedAt])

					return nil
				})
			f.jobRepo.EXPECT().MarkDoneTx(gomock.Any(), gomock.Any(), "j1", now).Return(nil)

			require.NoError(t, f.svc.ProcessJob(context.Background(), job))
		})
	}
}

func TestProcessJob_ValidatorErrorIsRetried(t *testing.T) {
	f := newFixture(t)
	job := model.Job{ID: "j1", SettlementID: "s1", Attempts: 2, MaxAttempts: 5}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingSettlement(), nil)
	f.validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(model.Verdict{}, errors.New("storage timeout"))
	f.jobRepo.EXPECT().Retry(gomock.Any(), "j1", now.Add(60*time.Second), "storage timeout").Return(nil)

	require.NoError(t, f.svc.ProcessJob(context.Background(), job))
}

func TestProcessJob_LastAttemptFailsTheJob(t *testing.T) {
	f := newFixture(t)
	job := model.Job{ID: "j1", SettlementID: "s1", Attempts: 5, MaxAttempts: 5}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingSettlement(), nil)
	f.validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(model.Verdict{}, errors.New("storage timeout"))
	f.jobRepo.EXPECT().Fail(gomock.Any(), "j1", "storage timeout").Return(nil)

	require.NoError(t, f.svc.ProcessJob(context.Background(), job))
}

func TestProcessJob_RetryBookkeepingFails(t *testing.T) {
	f := newFixture(t)
	job := model.Job{ID: "j1", SettlementID: "s1", Attempts: 1, MaxAttempts: 5}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Settlement{}, errDB)
	f.jobRepo.EXPECT().Retry(gomock.Any(), "j1", gomock.Any(), gomock.Any()).Return(failure.Storage(errDB))

	err := f.svc.ProcessJob(context.Background(), job)

	require.ErrorIs(t, err, errDB)
}

func TestProcessJob_SettlementAlreadyDecided(t *testing.T) {
	f := newFixture(t)
	job := model.Job{ID: "j1", SettlementID: "s1", Attempts: 1, MaxAttempts: 5}

	reviewed := pendingSettlement()
	reviewed.Status = model.StatusRejected

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reviewed, nil)
	f.jobRepo.EXPECT().MarkDoneTx(gomock.Any(), gomock.Any(), "j1", now).Return(nil)

	require.NoError(t, f.svc.ProcessJob(context.Background(), job))
}

func TestProcessJob_ReviewedWhileValidating(t *testing.T) {
	f := newFixture(t)
	job := model.Job{ID: "j1", SettlementID: "s1", Attempts: 1, MaxAttempts: 5}

	approved := pendingSettlement()
	approved.Status = model.StatusApproved

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingSettlement(), nil)
	f.validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(model.Verdict{Confidence: 0.3}, nil)
	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(approved, nil)
	f.jobRepo.EXPECT().MarkDoneTx(gomock.Any(), gomock.Any(), "j1", now).Return(nil)

	require.NoError(t, f.svc.ProcessJob(context.Background(), job))
}

func TestUploadProof(t *testing.T) {
	f := newFixture(t)
	header := &multipart.FileHeader{Filename: "transfer receipt.PNG"}

	f.storage.EXPECT().
		UploadFile(gomock.Any(), "", "settlements", gomock.Any(), header, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, directory string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
			return "https://proofs.example.com/" + directory + "/" + fileName, nil
		})

	res, err := f.svc.UploadProof(userContext(), dto.UploadProofRequest{Proof: header})

	require.NoError(t, err)
	assert.Equal(t, ".PNG", path.Ext(res.FileName))
	assert.NotContains(t, res.FileName, "receipt")
	assert.True(t, strings.HasSuffix(res.URL, "/settlements/"+res.FileName))
}

func TestUploadProof_StorageError(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().
		UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errDB)

	_, err := f.svc.UploadProof(userContext(), dto.UploadProofRequest{Proof: &multipart.FileHeader{Filename: "a.pdf"}})

	require.ErrorIs(t, err, errDB)
}
