package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cobuilt/quote-bot/internal/app/bot"
	"cobuilt/quote-bot/internal/app/config"
	"cobuilt/quote-bot/internal/app/http/handlers"
	"cobuilt/quote-bot/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, b *bot.Bot) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)

	h := handlers.New(b)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.TelegramSecret(cfg.TelegramWebhookSecret))
			r.Post("/telegram/webhook", h.TelegramWebhook)
		})
	})

	return r
}
