package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"cobuilt/quote-bot/internal/app/bot"
)

type telegramUpdate struct {
	UpdateID      int64                  `json:"update_id"`
	Message       *telegramMessage       `json:"message,omitempty"`
	CallbackQuery *telegramCallbackQuery `json:"callback_query,omitempty"`
}

type telegramMessage struct {
	MessageID int64         `json:"message_id"`
	From      *telegramUser `json:"from,omitempty"`
	Chat      telegramChat  `json:"chat"`
	Text      string        `json:"text,omitempty"`
}

type telegramCallbackQuery struct {
	ID      string           `json:"id"`
	From    telegramUser     `json:"from"`
	Message *telegramMessage `json:"message,omitempty"`
	Data    string           `json:"data,omitempty"`
}

type telegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

type telegramChat struct {
	ID int64 `json:"id"`
}

// TelegramWebhook processes one update to completion and always answers 200
// once decoded; Telegram redelivers on anything else.
func (h *Handlers) TelegramWebhook(w http.ResponseWriter, r *http.Request) {
	var upd telegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	switch {
	case upd.Message != nil && strings.TrimSpace(upd.Message.Text) != "":
		msg := upd.Message
		log.Printf("telegram: text received chat_id=%d len=%d", msg.Chat.ID, len(msg.Text))
		var userID int64
		var name string
		if msg.From != nil {
			userID = msg.From.ID
			name = displayName(*msg.From)
		}
		h.Bot.HandleMessage(r.Context(), msg.Chat.ID, userID, name, msg.Text)
	case upd.CallbackQuery != nil:
		cq := upd.CallbackQuery
		cb := bot.Callback{
			ID:       cq.ID,
			UserID:   cq.From.ID,
			Username: displayName(cq.From),
			Data:     cq.Data,
		}
		if cq.Message != nil {
			cb.ChatID = cq.Message.Chat.ID
			cb.MessageID = cq.Message.MessageID
			cb.MessageText = cq.Message.Text
		}
		log.Printf("telegram: callback received chat_id=%d data=%s", cb.ChatID, cb.Data)
		h.Bot.HandleCallback(r.Context(), cb)
	default:
		log.Printf("telegram: update ignored update_id=%d", upd.UpdateID)
	}
	w.WriteHeader(http.StatusOK)
}

func displayName(u telegramUser) string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}
