// Package bot routes inbound Telegram updates to the conversation machine,
// the approval workflow and the quote repository, and sends the resulting
// prompts back out. Outbound delivery is fire-and-forget: failures are
// logged and never abort the surrounding step.
package bot

import (
	"context"
	"log"
	"strings"

	"cobuilt/quote-bot/internal/domain/approval"
	"cobuilt/quote-bot/internal/domain/conversation"
	"cobuilt/quote-bot/internal/domain/quote"
	"cobuilt/quote-bot/internal/domain/quote/pdf"
	"cobuilt/quote-bot/internal/infra/store"
	"cobuilt/quote-bot/internal/infra/telegram"
)

// Sender is the outbound transport contract.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, replyMarkup any) error
	EditMessageText(ctx context.Context, chatID, messageID int64, text string) error
	AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error
	SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string, replyMarkup any) error
}

// Callback is a decoded callback-query update.
type Callback struct {
	ID          string
	ChatID      int64
	MessageID   int64
	MessageText string
	UserID      int64
	Username    string
	Data        string
}

type Bot struct {
	store    store.Store
	approval *approval.Service
	sender   Sender
	pdf      pdf.Generator
	adminIDs []int64
	sessions *sessions
}

func New(st store.Store, appr *approval.Service, sender Sender, gen pdf.Generator, adminIDs []int64) *Bot {
	return &Bot{
		store:    st,
		approval: appr,
		sender:   sender,
		pdf:      gen,
		adminIDs: adminIDs,
		sessions: newSessions(),
	}
}

// HandleMessage processes one inbound text message to completion.
func (b *Bot) HandleMessage(ctx context.Context, chatID, userID int64, username, text string) {
	switch command(text) {
	case "/start":
		b.send(ctx, chatID, welcomeText(username), nil)
	case "/help":
		b.send(ctx, chatID, helpText, nil)
	case "/createpi":
		b.startFlow(ctx, chatID, userID, username)
	case "/myquotes":
		b.myQuotes(ctx, chatID, userID)
	case "/cancel":
		b.cancelFlow(ctx, chatID)
	default:
		b.flowInput(ctx, chatID, text)
	}
}

// HandleCallback processes one inline-button action to completion.
func (b *Bot) HandleCallback(ctx context.Context, cb Callback) {
	// Answer first so the button stops spinning, then act.
	if err := b.sender.AnswerCallback(ctx, cb.ID, "", false); err != nil {
		log.Printf("bot: answer callback failed chat_id=%d err=%v", cb.ChatID, err)
	}
	switch {
	case cb.Data == conversation.CallbackStartOver:
		b.startFlow(ctx, cb.ChatID, cb.UserID, cb.Username)
	case strings.HasPrefix(cb.Data, "approve_") || strings.HasPrefix(cb.Data, "reject_"):
		b.handleDecision(ctx, cb)
	default:
		b.reviewAction(ctx, cb)
	}
}

func (b *Bot) startFlow(ctx context.Context, chatID, userID int64, username string) {
	e := b.sessions.entryFor(chatID)
	e.mu.Lock()
	e.s = conversation.NewSession(chatID, userID, username)
	p := conversation.CustomerPrompt()
	e.mu.Unlock()
	b.sendPrompt(ctx, chatID, p)
}

func (b *Bot) cancelFlow(ctx context.Context, chatID int64) {
	e := b.sessions.entryFor(chatID)
	e.mu.Lock()
	e.s = nil
	e.mu.Unlock()
	b.send(ctx, chatID, "❌ Operation cancelled. Use /createpi to start again.", telegram.ReplyKeyboardRemove{RemoveKeyboard: true})
}

func (b *Bot) flowInput(ctx context.Context, chatID int64, text string) {
	e := b.sessions.entryFor(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.s == nil {
		b.send(ctx, chatID, "Use /createpi to start a new quote.", nil)
		return
	}
	res := conversation.Advance(e.s, classify(text))
	if res.Cancelled {
		e.s = nil
		b.send(ctx, chatID, "❌ Operation cancelled. Use /createpi to start again.", telegram.ReplyKeyboardRemove{RemoveKeyboard: true})
		return
	}
	b.sendPrompt(ctx, chatID, res.Prompt)
}

func (b *Bot) myQuotes(ctx context.Context, chatID, userID int64) {
	quotes, err := b.store.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("bot: list quotes failed user_id=%d err=%v", userID, err)
		b.send(ctx, chatID, "Could not load your quotes, try again later.", nil)
		return
	}
	if len(quotes) == 0 {
		b.send(ctx, chatID, "You have no quotes yet.", nil)
		return
	}
	for _, q := range quotes {
		t := q.Totals()
		b.send(ctx, chatID, strings.Join([]string{
			"Quote: " + q.Number,
			"Customer: " + q.Customer,
			"Subtotal: " + quote.Money(t.Subtotal) + " Birr",
			"VAT (15%): " + quote.Money(t.VAT) + " Birr",
			"Grand Total: " + quote.Money(t.GrandTotal) + " Birr",
			"Status: " + string(q.Status),
		}, "\n"), nil)
	}
}

// classify maps reply-keyboard tokens to machine events.
func classify(text string) conversation.Event {
	switch strings.TrimSpace(text) {
	case conversation.CancelLabel:
		return conversation.Event{Kind: conversation.EventCancel}
	case conversation.BackLabel:
		return conversation.Event{Kind: conversation.EventBack}
	default:
		return conversation.Event{Kind: conversation.EventText, Text: text}
	}
}

func command(text string) string {
	cmd := strings.TrimSpace(text)
	if !strings.HasPrefix(cmd, "/") {
		return ""
	}
	if i := strings.IndexAny(cmd, " @"); i > 0 {
		cmd = cmd[:i]
	}
	return cmd
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, replyMarkup any) {
	if err := b.sender.SendMessage(ctx, chatID, text, replyMarkup); err != nil {
		log.Printf("bot: send failed chat_id=%d err=%v", chatID, err)
	}
}

func (b *Bot) sendPrompt(ctx context.Context, chatID int64, p conversation.Prompt) {
	if err := b.sender.SendMessage(ctx, chatID, p.Text, markupFor(p)); err != nil {
		log.Printf("bot: send prompt failed chat_id=%d err=%v", chatID, err)
	}
}

func markupFor(p conversation.Prompt) any {
	if len(p.Inline) > 0 {
		return inlineMarkup(p.Inline)
	}
	if len(p.Keyboard) > 0 {
		return telegram.NewReplyKeyboard(p.Keyboard)
	}
	if p.RemoveKeyboard {
		return telegram.ReplyKeyboardRemove{RemoveKeyboard: true}
	}
	return nil
}

func inlineMarkup(rows [][]conversation.Button) telegram.InlineKeyboard {
	var kb telegram.InlineKeyboard
	for _, row := range rows {
		var buttons []telegram.InlineButton
		for _, btn := range row {
			buttons = append(buttons, telegram.InlineButton{Text: btn.Label, CallbackData: btn.Data})
		}
		kb.InlineKeyboard = append(kb.InlineKeyboard, buttons)
	}
	return kb
}

func welcomeText(name string) string {
	if name == "" {
		name = "there"
	}
	return "👋 Welcome to CoBuilt Solutions PI Bot, " + name + "!\n\n" +
		"Commands:\n" +
		"/createpi - Create a new Price Quote\n" +
		"/myquotes - View your quotes\n" +
		"/cancel - Cancel operation\n" +
		"/help - Show help"
}

const helpText = "📖 How to use this bot:\n" +
	"1️⃣ /createpi\n" +
	"2️⃣ Follow prompts\n" +
	"3️⃣ Add extras\n" +
	"4️⃣ Delivery location\n" +
	"5️⃣ Review & confirm\n" +
	"6️⃣ Admin approval\n" +
	"7️⃣ Download PDF"
