package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchParsesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		w.Write([]byte(`{
			"main": {"temp": 71.6},
			"weather": [{"description": "clear sky", "icon": "01d"}],
			"name": "New York"
		}`))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL)
	snap, err := c.Fetch(context.Background(), 40.71, -74.0)

	require.NoError(t, err)
	assert.Equal(t, 71.6, snap.TempF)
	assert.Equal(t, "clear sky", snap.Description)
	assert.Equal(t, "01d", snap.Icon)
	assert.Equal(t, "New York", snap.City)
}

func TestFetchMissingKeyFailsFast(t *testing.T) {
	c := NewClient("", "")
	_, err := c.Fetch(context.Background(), 40.71, -74.0)
	require.ErrorIs(t, err, ErrMissingCredential)
}

func TestFetchNon200IsHardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL)
	_, err := c.Fetch(context.Background(), 40.71, -74.0)
	require.Error(t, err)
}

func TestFetchMissingTemperatureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather": [{"description": "fog"}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL)
	_, err := c.Fetch(context.Background(), 40.71, -74.0)
	require.Error(t, err)
}
