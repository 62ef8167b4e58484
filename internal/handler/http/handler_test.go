package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-mapping-keeper/internal/crypto"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/server"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
	"github.com/MKhiriev/go-mapping-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testAuth = AuthSettings{SignKey: "sign-key", Issuer: "mapping-keeper", Duration: time.Hour}

func newTestHandler(t *testing.T, password string) (http.Handler, *MockMappingAdmin) {
	t.Helper()

	verifier, err := crypto.NewPasswordVerifier(password)
	require.NoError(t, err)

	admin := NewMockMappingAdmin(gomock.NewController(t))
	h := NewHandler(admin, verifier, testAuth, models.NewAppBuildInfo("1.2.0", "2026-10-01", "abc123"), logger.Nop())
	return h.Init(), admin
}

func do(t *testing.T, router http.Handler, method, target string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T) http.Header {
	t.Helper()
	token, err := utils.GenerateJWTToken(testAuth.Issuer, "ops", time.Minute, testAuth.SignKey)
	require.NoError(t, err)
	return http.Header{"Authorization": {"Bearer " + token.SignedString}}
}

func TestHandler_Version(t *testing.T) {
	router, _ := newTestHandler(t, "secret")

	rec := do(t, router, http.MethodGet, "/api/version", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.0", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestHandler_Status(t *testing.T) {
	router, admin := newTestHandler(t, "secret")

	want := server.Status{
		Users:      []string{"alice", "bob"},
		Locks:      []server.LockStatus{{SyncID: 3, Entry: "a.m()V", Awaiting: []string{"bob"}}},
		Mappings:   12,
		Dirty:      true,
		NextSyncID: 4,
	}
	admin.EXPECT().Status(gomock.Any()).Return(want, nil)

	rec := do(t, router, http.MethodGet, "/api/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got server.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestHandler_StatusServerClosed(t *testing.T) {
	router, admin := newTestHandler(t, "secret")
	admin.EXPECT().Status(gomock.Any()).Return(server.Status{}, server.ErrServerClosed)

	rec := do(t, router, http.MethodGet, "/api/status", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		password string
		body     any
		wantCode int
	}{
		{name: "valid", password: "secret", body: LoginRequest{Admin: "ops", Password: "secret"}, wantCode: http.StatusOK},
		{name: "wrong password", password: "secret", body: LoginRequest{Admin: "ops", Password: "nope"}, wantCode: http.StatusUnauthorized},
		{name: "blank admin", password: "secret", body: LoginRequest{Admin: "  ", Password: "secret"}, wantCode: http.StatusUnauthorized},
		{name: "bad body", password: "secret", body: "not an object", wantCode: http.StatusBadRequest},
		{name: "open server", password: "", body: LoginRequest{Admin: "ops"}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestHandler(t, tt.password)

			rec := do(t, router, http.MethodPost, "/api/admin/login", tt.body, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			token, err := utils.ValidateAndParseJWTToken(resp.Token, testAuth.SignKey, testAuth.Issuer)
			require.NoError(t, err)
			assert.Equal(t, "ops", token.Admin)
		})
	}
}

func TestHandler_Save(t *testing.T) {
	router, admin := newTestHandler(t, "secret")

	admin.EXPECT().Save(gomock.Any()).Return(nil)
	rec := do(t, router, http.MethodPost, "/api/admin/save", nil, bearer(t))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	admin.EXPECT().Save(gomock.Any()).Return(errors.New("disk full"))
	rec = do(t, router, http.MethodPost, "/api/admin/save", nil, bearer(t))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Kick(t *testing.T) {
	router, admin := newTestHandler(t, "secret")

	admin.EXPECT().KickUser(gomock.Any(), "bob").Return(nil)
	rec := do(t, router, http.MethodPost, "/api/admin/kick/bob", nil, bearer(t))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	admin.EXPECT().KickUser(gomock.Any(), "carol").
		Return(fmt.Errorf("%w: carol", server.ErrUnknownUser))
	rec = do(t, router, http.MethodPost, "/api/admin/kick/carol", nil, bearer(t))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_OperatorRoutesNeedToken(t *testing.T) {
	router, _ := newTestHandler(t, "secret")

	expired, err := utils.GenerateJWTToken(testAuth.Issuer, "ops", time.Nanosecond, testAuth.SignKey)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWTToken(testAuth.Issuer, "ops", time.Hour, "other-key")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	headers := map[string]http.Header{
		"missing":      nil,
		"not bearer":   {"Authorization": {"Basic b3BzOnNlY3JldA=="}},
		"expired":      {"Authorization": {"Bearer " + expired.SignedString}},
		"wrong key":    {"Authorization": {"Bearer " + foreign.SignedString}},
		"empty bearer": {"Authorization": {"Bearer"}},
	}
	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/admin/save", nil, header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestHandler_WrongMethodIsNotFound(t *testing.T) {
	router, _ := newTestHandler(t, "secret")

	rec := do(t, router, http.MethodPost, "/api/version", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_TraceIDPropagated(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	const traceID = "3b241101-e2bb-4255-8caf-4136c566a962"

	var seen bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.FromContext(r.Context()) != nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())
	req.Header.Set(traceIDHeader, traceID)
	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)

	assert.True(t, seen)
	assert.Equal(t, traceID, rec.Header().Get(traceIDHeader))

	req.Header.Set(traceIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(traceIDHeader))
}

func TestResponseWriter_RecordsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusTeapot)
	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, w.status)
	assert.Equal(t, 5, w.size)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
