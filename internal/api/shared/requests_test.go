package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/clinic-api/internal/domain"
)

type payload struct {
	Name *string `json:"name"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantName string
	}{
		{name: "object", body: `{"name":"Widget"}`, wantName: "Widget"},
		{name: "unknown fields ignored", body: `{"name":"Widget","color":"red"}`, wantName: "Widget"},
		{name: "empty body", body: ``},
		{name: "whitespace body", body: "  \n"},
		{name: "array", body: `[{"name":"Widget"}]`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"name":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			if tt.wantName == "" {
				assert.Nil(t, p.Name)
			} else {
				require.NotNil(t, p.Name)
				assert.Equal(t, tt.wantName, *p.Name)
			}
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	assert.ErrorIs(t, DecodeJSON(req, &payload{}), ErrInvalidBody)
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(domain.NewDoctor{})
	assert.True(t, domain.IsValidationError(err))

	type tagged struct {
		Name string `validate:"required"`
	}
	assert.Error(t, ValidateRequest(tagged{}))
	assert.NoError(t, ValidateRequest(tagged{Name: "x"}))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "42", want: 42},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.raw)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			id, err := ParseID(req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
