package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAccountRoutes(mux *http.ServeMux, handler *Handler, defaultAccountID string) {
	mux.HandleFunc("POST /v1/sessions", handler.SignIn)
	mux.HandleFunc("POST /v1/accounts", handler.OpenAccount)
	mux.Handle("GET /v1/me", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.GetMe)))
	mux.Handle("PUT /v1/me", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.UpdateMe)))
	mux.Handle("GET /v1/me/history", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.ListHistory)))
	mux.Handle("GET /v1/dashboard", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.GetDashboard)))
}

func registerTicketRoutes(mux *http.ServeMux, handler *Handler, defaultAccountID string) {
	mux.HandleFunc("GET /v1/tickets/quick-pick", handler.QuickPick)
	mux.Handle("GET /v1/tickets", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.ListTickets)))
	mux.Handle("POST /v1/tickets", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.PurchaseTicket)))
	mux.Handle("PATCH /v1/tickets/{ticketID}/numbers", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.ModifyTicketNumber)))
}

func registerDrawRoutes(mux *http.ServeMux, handler *Handler, defaultAccountID string) {
	mux.HandleFunc("GET /v1/draws/current", handler.GetCurrentDraw)
	mux.HandleFunc("POST /v1/draws", handler.CreateDraw)
	mux.HandleFunc("POST /v1/draws/{drawID}/run", handler.RunDraw)
	mux.HandleFunc("POST /v1/draws/{drawID}/settle", handler.SettleDraw)
	mux.Handle("GET /v1/draws/{drawID}/results", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.CheckTickets)))
}

func registerRewardRoutes(mux *http.ServeMux, handler *Handler, defaultAccountID string) {
	mux.Handle("POST /v1/rewards/spin", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.Spin)))
	mux.Handle("GET /v1/rewards/catalog", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.ListCatalog)))
	mux.Handle("POST /v1/rewards/catalog/{itemID}/claim", ResolveAccount(defaultAccountID, http.HandlerFunc(handler.ClaimCatalogItem)))
}
