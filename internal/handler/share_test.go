package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmdang/tripplanner/backend/internal/domain"
	"github.com/hmdang/tripplanner/backend/internal/handler"
)

// mockShareServicer is a test double for handler.ShareServicer.
type mockShareServicer struct {
	encodeShareLink  func(planID, ownerID string) string
	decodeShareToken func(uri string) (planID, ownerID string, err error)
	shareQR          func(planID, ownerID string) ([]byte, error)
}

func (m *mockShareServicer) EncodeShareLink(planID, ownerID string) string {
	return m.encodeShareLink(planID, ownerID)
}
func (m *mockShareServicer) DecodeShareToken(uri string) (string, string, error) {
	return m.decodeShareToken(uri)
}
func (m *mockShareServicer) ShareQR(planID, ownerID string) ([]byte, error) {
	return m.shareQR(planID, ownerID)
}

var _ handler.ShareServicer = (*mockShareServicer)(nil)

func newShareHandler(share handler.ShareServicer) http.Handler {
	return handler.NewServer(&mockPlanServicer{}, allowAll(), share).Routes()
}

func TestGetShareLink_200(t *testing.T) {
	share := &mockShareServicer{
		encodeShareLink: func(planID, ownerID string) string {
			assert.Equal(t, "p1", planID)
			assert.Equal(t, "u1", ownerID)
			return "https://tripplanner.page.link/?link=x&planId=p1"
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/plans/u1/p1/share", nil)
	rec := httptest.NewRecorder()

	newShareHandler(share).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"link":"https://tripplanner.page.link/?link=x&planId=p1"}`, rec.Body.String())
}

func TestGetShareQR_200(t *testing.T) {
	png := []byte("\x89PNG fake image bytes")
	share := &mockShareServicer{
		shareQR: func(_, _ string) ([]byte, error) { return png, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/plans/u1/p1/share/qr", nil)
	rec := httptest.NewRecorder()

	newShareHandler(share).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestDecodeShareToken_200(t *testing.T) {
	share := &mockShareServicer{
		decodeShareToken: func(uri string) (string, string, error) {
			assert.Equal(t, "https://tripplanner.page.link/?link=x&planId=p1", uri)
			return "p1", "u1", nil
		},
	}

	body := jsonBody(t, map[string]any{"uri": "https://tripplanner.page.link/?link=x&planId=p1"})
	req := httptest.NewRequest(http.MethodPost, "/share/decode", body)
	rec := httptest.NewRecorder()

	newShareHandler(share).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plan_id":"p1","owner_id":"u1"}`, rec.Body.String())
}

func TestDecodeShareToken_422_InvalidToken(t *testing.T) {
	share := &mockShareServicer{
		decodeShareToken: func(_ string) (string, string, error) {
			return "", "", domain.ErrInvalidShareToken
		},
	}

	body := jsonBody(t, map[string]any{"uri": "not a share link"})
	req := httptest.NewRequest(http.MethodPost, "/share/decode", body)
	rec := httptest.NewRecorder()

	newShareHandler(share).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid_share_token", resp.Error.Code)
}

func TestDecodeShareToken_422_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/share/decode", bytes.NewBufferString("{oops"))
	rec := httptest.NewRecorder()

	newShareHandler(&mockShareServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
