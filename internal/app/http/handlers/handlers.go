package handlers

import (
	"cobuilt/quote-bot/internal/app/bot"
)

type Handlers struct {
	Bot *bot.Bot
}

func New(b *bot.Bot) *Handlers {
	return &Handlers{Bot: b}
}
