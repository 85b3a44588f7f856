package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

type fakeRepo struct {
	products  []Result
	suppliers []Result
}

func (f *fakeRepo) Products(_ context.Context, query string) ([]Result, error) {
	return filter(f.products, query), nil
}

func (f *fakeRepo) Suppliers(_ context.Context, query string) ([]Result, error) {
	return filter(f.suppliers, query), nil
}

func filter(results []Result, query string) []Result {
	var out []Result
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(query)) {
			out = append(out, r)
		}
	}
	return out
}

func newTestHandler() *Handler {
	repo := &fakeRepo{
		products: []Result{
			{Type: "product", ID: 1, Name: "Claw Hammer"},
			{Type: "product", ID: 2, Name: "Wood Glue"},
		},
		suppliers: []Result{
			{Type: "supplier", ID: 1, Name: "Hammerton Ltd"},
		},
	}
	return NewHandler(slog.Default(), NewService(repo))
}

func TestSearchMatchesCaseInsensitively(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest("GET", "/?q=HAMM", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	require.Equal(t, 200, rec.Code)
	var env struct {
		Success bool    `json:"success"`
		Data    Results `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.Len(t, env.Data.Products, 1)
	require.Equal(t, "Claw Hammer", env.Data.Products[0].Name)
	require.Len(t, env.Data.Suppliers, 1)
}

func TestSearchRejectsShortQuery(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest("GET", "/?q=h", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	require.Equal(t, 400, rec.Code)
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.False(t, env.Success)
	require.Contains(t, env.Error, "at least 2 characters")
}

func TestSearchEmptySlicesNotNull(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest("GET", "/?q=zzzz", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), `"products":[]`)
	require.Contains(t, rec.Body.String(), `"suppliers":[]`)
}
