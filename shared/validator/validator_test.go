package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"studio/shared/failure"
	"studio/shared/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingLikeRequest struct {
	ArtistID string          `json:"artist_id" validate:"required,uuid"`
	Value    decimal.Decimal `json:"value"     validate:"money"`
	Rate     decimal.Decimal `json:"rate"      validate:"rate"`
	Status   string          `json:"status"    validate:"omitempty,oneof=OPEN CONFIRMED"`
}

const validArtistID = "7b0f4f5e-6d7b-4b7a-9f5c-1d2e3f4a5b6c"

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    bookingLikeRequest
		wantErr string
	}{
		{
			name: "valid",
			data: bookingLikeRequest{ArtistID: validArtistID, Value: decimal.NewFromInt(1000), Rate: decimal.RequireFromString("0.3")},
		},
		{
			name:    "missing artist",
			data:    bookingLikeRequest{Value: decimal.NewFromInt(1000)},
			wantErr: "artist_id is required",
		},
		{
			name:    "not a uuid",
			data:    bookingLikeRequest{ArtistID: "rin", Value: decimal.NewFromInt(1000)},
			wantErr: "artist_id must be a valid UUID",
		},
		{
			name:    "zero is not money",
			data:    bookingLikeRequest{ArtistID: validArtistID, Value: decimal.Zero},
			wantErr: "value must be a positive amount with at most two decimals",
		},
		{
			name:    "three decimals is not money",
			data:    bookingLikeRequest{ArtistID: validArtistID, Value: decimal.RequireFromString("10.005")},
			wantErr: "value must be a positive amount with at most two decimals",
		},
		{
			name:    "rate above one",
			data:    bookingLikeRequest{ArtistID: validArtistID, Value: decimal.NewFromInt(10), Rate: decimal.RequireFromString("1.01")},
			wantErr: "rate must be between 0 and 1",
		},
		{
			name:    "negative rate",
			data:    bookingLikeRequest{ArtistID: validArtistID, Value: decimal.NewFromInt(10), Rate: decimal.RequireFromString("-0.1")},
			wantErr: "rate must be between 0 and 1",
		},
		{
			name:    "unknown status",
			data:    bookingLikeRequest{ArtistID: validArtistID, Value: decimal.NewFromInt(10), Status: "DONE"},
			wantErr: "status must be one of OPEN CONFIRMED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", wantErr: true},
		{name: "in range", field: 25, tag: "gte=0,lte=100"},
		{name: "out of range", field: 150, tag: "gte=0,lte=100", wantErr: true},
		{name: "oneof", field: "OPEN", tag: "oneof=OPEN CONFIRMED"},
		{name: "not oneof", field: "DONE", tag: "oneof=OPEN CONFIRMED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}

func TestValidateVar_Message(t *testing.T) {
	err := validator.ValidateVar("", "required")

	require.Error(t, err)
	assert.Equal(t, "value is required", err.Error())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "string money", body: `{"artist_id":"` + validArtistID + `","value":"1000","rate":"0.2"}`},
		{name: "numeric money", body: `{"artist_id":"` + validArtistID + `","value":450.5}`},
		{name: "malformed", body: `{"artist_id":}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingLikeRequest
			err := validator.Validate(strings.NewReader(tt.body), &data)

			if !tt.wantErr {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}
