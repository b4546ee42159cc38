package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=5"`
	Email    string `json:"email"    validate:"required,email"`
	Priority *int   `json:"priority" validate:"omitempty,min=1,max=3"`
	Status   string `json:"status"   validate:"omitempty,oneof=PENDING DONE"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		errContains string
		errIs       error
	}{
		{name: "valid", body: `{"name":"abc","email":"a@b.co"}`},
		{name: "empty body", body: "", wantErr: true, errIs: ErrEmptyBody},
		{name: "malformed", body: `{"name":`, wantErr: true, errContains: "invalid JSON body"},
		{name: "unknown field", body: `{"nickname":"x"}`, wantErr: true, errContains: "unknown field"},
		{name: "trailing data", body: `{"name":"a"}{"name":"b"}`, wantErr: true, errContains: "trailing data"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var target sampleRequest
			err := DecodeJSON(w, req, &target)

			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "abc", target.Name)
				return
			}
			require.Error(t, err)
			if tc.errIs != nil {
				assert.True(t, errors.Is(err, tc.errIs))
			}
			if tc.errContains != "" {
				assert.Contains(t, err.Error(), tc.errContains)
			}
		})
	}
}

func TestDecodeJSONBodyLimit(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))

	var target sampleRequest
	err := DecodeJSON(httptest.NewRecorder(), req, &target)
	assert.Error(t, err)
}

func TestValidationMessages(t *testing.T) {
	zero := 0
	err := ValidateRequest(sampleRequest{
		Name:     "toolong",
		Email:    "nope",
		Priority: &zero,
		Status:   "LATER",
	})
	require.Error(t, err)

	assert.ElementsMatch(t, []string{
		"name must be at most 5 characters",
		"email must be a valid email address",
		"priority must be at least 1",
		"status must be one of: PENDING, DONE",
	}, ValidationMessages(err))

	err = ValidateRequest(sampleRequest{})
	assert.ElementsMatch(t, []string{"name is required", "email is required"}, ValidationMessages(err))

	assert.Nil(t, ValidationMessages(errors.New("plain")))
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "ok", Email: "ok@example.com"}))
}

func TestValidateMaxBytes(t *testing.T) {
	type secret struct {
		Password string `json:"password" validate:"required,max=8,maxbytes=8"`
	}

	assert.NoError(t, ValidateRequest(secret{Password: "abcdefgh"}))

	// Four runes fit max=8 but take sixteen bytes.
	err := ValidateRequest(secret{Password: strings.Repeat("😀", 4)})
	require.Error(t, err)
	assert.Equal(t, []string{"password must be at most 8 bytes"}, ValidationMessages(err))
}
