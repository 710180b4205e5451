package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	TelegramBotToken      string
	TelegramWebhookSecret string
	TelegramBaseURL       string

	// AdminIDs is the static allow-list of actors who may approve or reject
	// quotes, and who get notified on submission.
	AdminIDs []int64

	DataFile    string
	DatabaseURL string
	BrandingDir string
}

func MustLoad() Config {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	return Config{
		HTTPAddr:              env("HTTP_ADDR", ":8080"),
		TelegramBotToken:      mustEnv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookSecret: env("TELEGRAM_WEBHOOK_SECRET", ""),
		TelegramBaseURL:       env("TELEGRAM_BASE_URL", "https://api.telegram.org"),
		AdminIDs:              mustAdminIDs(mustEnv("ADMIN_IDS")),
		DataFile:              env("DATA_FILE", "bot_data.json"),
		DatabaseURL:           env("DATABASE_URL", ""),
		BrandingDir:           env("BRANDING_DIR", "assets"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func mustAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Fatalf("bad ADMIN_IDS entry %q: %v", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		log.Fatalf("ADMIN_IDS is empty")
	}
	return ids
}
