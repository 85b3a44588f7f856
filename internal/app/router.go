package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	analytichttp "github.com/dashel-erp/dashel-erp/internal/analytics/http"
	"github.com/dashel-erp/dashel-erp/internal/inventory"
	"github.com/dashel-erp/dashel-erp/internal/ledger"
	"github.com/dashel-erp/dashel-erp/internal/payouts"
	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
	"github.com/dashel-erp/dashel-erp/internal/sales"
	"github.com/dashel-erp/dashel-erp/internal/search"
	"github.com/dashel-erp/dashel-erp/internal/stkpush"
	"github.com/dashel-erp/dashel-erp/internal/suppliers"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SuppliersHandler *suppliers.Handler
	LedgerHandler    *ledger.Handler
	PayoutsHandler   *payouts.Handler
	SalesHandler     *sales.Handler
	InventoryHandler *inventory.Handler
	AnalyticsHandler *analytichttp.Handler
	SearchHandler    *search.Handler
	StkPushHandler   *stkpush.Handler
}

// NewRouter constructs the chi.Router with DASHEL defaults. The legacy
// "?endpoint=" dispatch surface and the versioned REST routes serve the
// same handlers.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// The gateway posts results here; it has no API key.
	r.Post("/callback", params.StkPushHandler.Callback)

	guard := APIKeyGuard(params.Config)

	// Dispatch surface the frontend was built against.
	r.With(guard).HandleFunc("/api", dispatchEndpoint(params))
	r.With(guard).HandleFunc("/api.php", dispatchEndpoint(params))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(guard)
		r.Route("/suppliers", params.SuppliersHandler.MountRoutes)
		r.Route("/ledger", params.LedgerHandler.MountRoutes)
		r.Route("/bank-payments", params.PayoutsHandler.MountRoutes)
		r.Route("/sales", params.SalesHandler.MountRoutes)
		r.Route("/inventory", params.InventoryHandler.MountRoutes)
		r.Route("/analytics", params.AnalyticsHandler.MountRoutes)
		r.Route("/search", params.SearchHandler.MountRoutes)
		r.Route("/stk-push", params.StkPushHandler.MountRoutes)
	})

	return r
}

type endpointRoute struct {
	get  http.HandlerFunc
	post http.HandlerFunc
}

// dispatchEndpoint resolves the legacy "endpoint" query parameter onto the
// module handlers. Unknown endpoints get 404, a known endpoint hit with the
// wrong verb gets 405.
func dispatchEndpoint(params RouterParams) http.HandlerFunc {
	routes := map[string]endpointRoute{
		"dashboard":            {get: params.AnalyticsHandler.Dashboard},
		"sales":                {get: params.SalesHandler.List, post: params.SalesHandler.Record},
		"inventory":            {get: params.InventoryHandler.List, post: params.InventoryHandler.Add},
		"suppliers":            {get: params.SuppliersHandler.List, post: params.SuppliersHandler.Create},
		"stk-push":             {post: params.StkPushHandler.Initiate},
		"stk-history":          {get: params.StkPushHandler.History},
		"search":               {get: params.SearchHandler.Search},
		"supplier-invoice":     {post: params.LedgerHandler.RecordInvoice},
		"supplier-payment":     {post: params.LedgerHandler.RecordPayment},
		"supplier-ledger":      {get: params.LedgerHandler.Ledger},
		"supplier-balances":    {get: params.LedgerHandler.Balances},
		"bank-payments":        {get: params.PayoutsHandler.List, post: params.PayoutsHandler.CreateDraft},
		"bank-payments-export": {post: params.PayoutsHandler.Export},
		"sales-analytics":      {get: params.AnalyticsHandler.SalesAnalytics},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		route, ok := routes[r.URL.Query().Get("endpoint")]
		if !ok {
			httpx.Fail(w, http.StatusNotFound, "Invalid endpoint")
			return
		}
		var handler http.HandlerFunc
		switch r.Method {
		case http.MethodGet:
			handler = route.get
		case http.MethodPost:
			handler = route.post
		}
		if handler == nil {
			httpx.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		handler(w, r)
	}
}
