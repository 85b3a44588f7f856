package app

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRouter(apiKey string) *httptest.Server {
	router := NewRouter(RouterParams{
		Logger: slog.Default(),
		Config: &Config{AppEnv: "test", APIKey: apiKey, CORSAllowOrigin: "*"},
	})
	return httptest.NewServer(router)
}

func TestDispatchUnknownEndpoint(t *testing.T) {
	srv := newTestRouter("")
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api?endpoint=nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 404, resp.StatusCode)
}

func TestDispatchWrongMethod(t *testing.T) {
	srv := newTestRouter("")
	defer srv.Close()

	// stk-push only accepts POST.
	resp, err := srv.Client().Get(srv.URL + "/api?endpoint=stk-push")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 405, resp.StatusCode)
}

func TestWritesRequireAPIKey(t *testing.T) {
	srv := newTestRouter("sekret")
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/api?endpoint=suppliers", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 401, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := newTestRouter("")
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)
}
