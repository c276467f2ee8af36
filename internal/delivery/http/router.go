package http

import (
	"net/http"

	"github.com/buxzona/buxzona-backend/internal/delivery/http/handlers"
	"github.com/buxzona/buxzona-backend/internal/delivery/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Price   *handlers.PriceHandler
	Verify  *handlers.VerifyHandler
	Auth    *handlers.AuthHandler
	Payment *handlers.PaymentHandler
}

func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /get-prices", h.Price.GetPrices)
	mux.HandleFunc("POST /verify-gamepass", h.Verify.VerifyGamepass)
	mux.HandleFunc("POST /login-with-cookie", h.Auth.LoginWithCookie)
	mux.HandleFunc("POST /create-payment", h.Payment.CreatePayment)
	mux.HandleFunc("POST /payment-notification", h.Payment.HandleWebhook)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return middleware.RequestID(middleware.AccessLog(middleware.CORS(mux)))
}
