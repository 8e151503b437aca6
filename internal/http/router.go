// http собирает REST-роутер гейтвея: middleware-цепочку и
// LNDHub-совместимые маршруты.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-lightning-hub/internal/http/handlers"
	"github.com/pribylovaa/go-lightning-hub/internal/http/middleware"
	"github.com/pribylovaa/go-lightning-hub/internal/service"
	"github.com/pribylovaa/go-lightning-hub/internal/tokens"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, tm *tokens.Manager, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc, tm)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, tm)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, tm)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, tm *tokens.Manager) {
	// Публичные маршруты: создание аккаунта и авторизация.
	r.Post("/create", h.CreateAccount)
	r.Post("/auth", h.Auth)

	// Всё остальное — за bearer-токеном.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.AuthBearer(tm))

		// wallet
		pr.Get("/balance", h.Balance)
		pr.Get("/getpending", h.PendingBalance)
		pr.Get("/getbtc", h.CurrentAddress)
		pr.Get("/newbtc", h.NewAddress)

		// ledger
		pr.Get("/gettxs", h.Transactions)
		pr.Get("/gettx/{id}", h.Transaction)
		pr.Get("/getuserinvoices", h.UserInvoices)

		// payments
		pr.Post("/addinvoice", h.AddInvoice)
		pr.Post("/payinvoice", h.PayInvoice)
		pr.Get("/decodeinvoice", h.DecodeInvoice)
		pr.Get("/checkroute", h.CheckRoute)

		// node
		pr.Get("/getinfo", h.NodeInfo)
		pr.Post("/node/connect", h.ConnectPeer)
	})
}
