package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateUserRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantPhoneSet  bool
		wantPhone     *string
		wantEmpty     bool
		wantInputNilP bool
	}{
		{
			name:          "phone key absent",
			body:          `{"firstName":"Jane"}`,
			wantPhoneSet:  false,
			wantInputNilP: true,
		},
		{
			name:          "explicit null clears the phone",
			body:          `{"phone":null}`,
			wantPhoneSet:  true,
			wantInputNilP: true,
		},
		{
			name:          "empty string behaves like null",
			body:          `{"phone":""}`,
			wantPhoneSet:  true,
			wantInputNilP: true,
		},
		{
			name:          "new phone value",
			body:          `{"phone":"+15551234567"}`,
			wantPhoneSet:  true,
			wantPhone:     strPtr("+15551234567"),
			wantInputNilP: false,
		},
		{
			name:      "empty object",
			body:      `{}`,
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateUserRequest
			assert.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantPhoneSet, req.phoneSet)
			assert.Equal(t, tt.wantEmpty, req.Empty())

			input := req.ToInput()
			assert.Equal(t, tt.wantPhoneSet, input.PhoneSet)
			if tt.wantInputNilP {
				assert.Nil(t, input.Phone)
			}
			if tt.wantPhone != nil {
				assert.NotNil(t, input.Phone)
				assert.Equal(t, *tt.wantPhone, *input.Phone)
			}
		})
	}
}

func TestSignupRequest_ToInput(t *testing.T) {
	t.Run("empty phone is dropped", func(t *testing.T) {
		req := SignupRequest{Email: "jane@student.edu", Phone: strPtr("")}
		assert.Nil(t, req.ToInput().Phone)
	})

	t.Run("phone is carried", func(t *testing.T) {
		req := SignupRequest{Email: "jane@student.edu", Phone: strPtr("+15551234567")}
		input := req.ToInput()
		assert.NotNil(t, input.Phone)
		assert.Equal(t, "+15551234567", *input.Phone)
	})
}

func TestListListingsQuery_ToFilter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		filter := ListListingsQuery{}.ToFilter()
		assert.Equal(t, "createdAt", filter.SortBy)
		assert.Equal(t, "desc", filter.SortOrder)
		assert.Equal(t, 20, filter.Limit)
		assert.Equal(t, 0, filter.Offset)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		filter := ListListingsQuery{
			Search:    "lamp",
			Category:  "FURNITURE",
			SortBy:    "price",
			SortOrder: "asc",
			Limit:     50,
			Offset:    10,
		}.ToFilter()
		assert.Equal(t, "lamp", filter.Search)
		assert.Equal(t, "FURNITURE", filter.Category)
		assert.Equal(t, "price", filter.SortBy)
		assert.Equal(t, "asc", filter.SortOrder)
		assert.Equal(t, 50, filter.Limit)
		assert.Equal(t, 10, filter.Offset)
	})
}

func TestUpdateListingRequest_Empty(t *testing.T) {
	assert.True(t, UpdateListingRequest{}.Empty())

	available := false
	assert.False(t, UpdateListingRequest{IsAvailable: &available}.Empty())
}

func strPtr(s string) *string { return &s }
