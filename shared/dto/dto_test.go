package dto_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"studio/shared/constant"
	"studio/shared/dto"
	"studio/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "client-1",
		ModifiedBy: "artist-1",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "client-1", metadata.CreatedBy)
	assert.Equal(t, "artist-1", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{
		Page:    constant.DefaultValuePage,
		Limit:   constant.DefaultValueLimit,
		SortBy:  constant.DefaultValueSortBy,
		SortDir: constant.DefaultValueSortDir,
	}

	tests := []struct {
		name         string
		query        map[string]string
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:  "all parameters",
			query: map[string]string{"page": "2", "limit": "20", "sort_by": "status", "sort_dir": "asc"},
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "status", SortDir: dto.SortDirAsc},
		},
		{
			name: "nothing without defaults",
			want: dto.QueryParams{},
		},
		{
			name:         "nothing with defaults",
			withDefaults: true,
			want:         defaults,
		},
		{
			name:         "malformed numbers fall back",
			query:        map[string]string{"page": "abc", "limit": "-5"},
			withDefaults: true,
			want:         defaults,
		},
		{
			name:         "zero page falls back",
			query:        map[string]string{"page": "0"},
			withDefaults: true,
			want:         defaults,
		},
		{
			name:  "limit is capped",
			query: map[string]string{"limit": "5000"},
			want:  dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:         "unknown sort direction is dropped",
			query:        map[string]string{"sort_by": "slot_id", "sort_dir": "sideways"},
			withDefaults: true,
			want: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "slot_id",
				SortDir: constant.DefaultValueSortDir,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.query {
				values.Set(key, value)
			}

			request := httptest.NewRequest(http.MethodGet, "/v1/bookings?"+values.Encode(), nil)

			got := dto.QueryParams{}
			got.FromRequest(request, tt.withDefaults)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Value: "OPEN", Operator: dto.FilterOperatorEq, Table: "slots"},
			wantWhere: "slots.status = :status",
			wantArgs:  map[string]any{"status": "OPEN"},
		},
		{
			name:      "arg name overrides field",
			filter:    dto.Filter{ArgName: "from", Field: "start_time", Value: 10, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "start_time >= :from",
			wantArgs:  map[string]any{"from": 10},
		},
		{
			name:      "strict less",
			filter:    dto.Filter{Field: "end_time", Value: 5, Operator: dto.FilterOperatorLess},
			wantWhere: "end_time < :end_time",
			wantArgs:  map[string]any{"end_time": 5},
		},
		{
			name:      "strict greater",
			filter:    dto.Filter{Field: "confidence", Value: 0.5, Operator: dto.FilterOperatorGreater},
			wantWhere: "confidence > :confidence",
			wantArgs:  map[string]any{"confidence": 0.5},
		},
		{
			name:      "in expands slice",
			filter:    dto.Filter{Field: "id", Value: []string{"b1", "b2"}, Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id_0, :id_1) ",
			wantArgs:  map[string]any{"id_0": "b1", "id_1": "b2"},
		},
		{
			name:      "like",
			filter:    dto.Filter{Field: "name", Value: "Rin", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:name) ",
			wantArgs:  map[string]any{"name": "%Rin%"},
		},
		{
			name:      "not exists",
			filter:    dto.Filter{Value: "SELECT 1 FROM bookings", Operator: dto.FilterNotExists},
			wantWhere: "NOT EXISTS (SELECT 1 FROM bookings)",
			wantArgs:  map[string]any{},
		},
		{
			name:      "plain",
			filter:    dto.Filter{Value: "a = b", Operator: dto.FilterPlainQuery},
			wantWhere: "(a = b)",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "settlement_id", Operator: dto.FilterIsNull, Table: "bookings"},
			wantWhere: "bookings.settlement_id IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "artist_id", Value: "a1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Value: "COMPLETED", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "other", Field: "status", Value: "CONFIRMED", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(artist_id = :artist_id AND (status = :status OR status = :other))", where)
	assert.Equal(t, map[string]any{"artist_id": "a1", "status": "COMPLETED", "other": "CONFIRMED"}, args)

	empty := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestMetadata_FromModel_ZeroModified(t *testing.T) {
	metadata := &dto.Metadata{ModifiedAt: "stale"}
	metadata.FromModel(model.Metadata{CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CreatedBy: "client-1"})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.ModifiedBy)
}
