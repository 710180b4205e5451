package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"cobuilt/quote-bot/internal/app/bot"
	"cobuilt/quote-bot/internal/app/config"
	apphttp "cobuilt/quote-bot/internal/app/http"
	"cobuilt/quote-bot/internal/domain/approval"
	pdfgen "cobuilt/quote-bot/internal/domain/quote/pdf/gofpdf"
	"cobuilt/quote-bot/internal/infra/store"
	filestore "cobuilt/quote-bot/internal/infra/store/file"
	"cobuilt/quote-bot/internal/infra/store/postgres"
	"cobuilt/quote-bot/internal/infra/telegram"
)

func Run() {
	cfg := config.MustLoad()

	var (
		st  store.Store
		err error
	)
	if cfg.DatabaseURL != "" {
		st, err = postgres.New(context.Background(), cfg.DatabaseURL)
	} else {
		st, err = filestore.New(cfg.DataFile)
	}
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	tg := telegram.New(cfg.TelegramBaseURL, cfg.TelegramBotToken)
	appr := approval.New(st, cfg.AdminIDs)
	b := bot.New(st, appr, tg, pdfgen.New(cfg.BrandingDir), cfg.AdminIDs)

	router := apphttp.NewRouter(cfg, b)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
