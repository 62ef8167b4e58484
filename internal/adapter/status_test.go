package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/server"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) StatusAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewStatusAdapter(config.ClientAdapter{StatusURL: srv.URL, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestStatusAdapter_Status(t *testing.T) {
	want := server.Status{
		Users:      []string{"alice"},
		Locks:      []server.LockStatus{{SyncID: 2, Entry: "a", Awaiting: []string{"bob"}}},
		Mappings:   3,
		NextSyncID: 3,
	}
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status", r.URL.Path)
		_, _ = utils.WriteJSON(w, want, http.StatusOK)
	})

	got, err := a.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStatusAdapter_Version(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1.2.0\n"))
	})

	v, err := a.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v)
}

func TestStatusAdapter_MapsErrors(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusServiceUnavailable, ErrUnavailable},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				utils.WriteError(w, "mapping server closed", tt.code)
			})

			_, err := a.Status(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorContains(t, err, "mapping server closed")
		})
	}
}

func TestStatusAdapter_Disabled(t *testing.T) {
	a, err := NewStatusAdapter(config.ClientAdapter{}, logger.Nop())
	require.NoError(t, err)

	_, err = a.Status(context.Background())
	assert.ErrorIs(t, err, ErrStatusDisabled)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL(" localhost:8080/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	_, err = normalizeBaseURL("http://")
	assert.Error(t, err)
}
