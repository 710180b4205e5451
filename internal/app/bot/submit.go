package bot

import (
	"context"
	"log"
	"strings"

	"cobuilt/quote-bot/internal/domain/conversation"
	"cobuilt/quote-bot/internal/domain/quote"
	"cobuilt/quote-bot/internal/infra/telegram"
)

// reviewAction handles the inline submit/back/cancel buttons of the review
// step.
func (b *Bot) reviewAction(ctx context.Context, cb Callback) {
	e := b.sessions.entryFor(cb.ChatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.s == nil || e.s.Step != conversation.StepReview {
		b.send(ctx, cb.ChatID, "Use /createpi to start a new quote.", nil)
		return
	}

	var ev conversation.Event
	switch cb.Data {
	case conversation.CallbackSubmit:
		ev = conversation.Event{Kind: conversation.EventConfirm}
	case conversation.CallbackBack:
		ev = conversation.Event{Kind: conversation.EventBack}
	case conversation.CallbackCancel:
		ev = conversation.Event{Kind: conversation.EventCancel}
	default:
		log.Printf("bot: unknown callback chat_id=%d data=%s", cb.ChatID, cb.Data)
		return
	}

	res := conversation.Advance(e.s, ev)
	switch {
	case res.Cancelled:
		e.s = nil
		b.edit(ctx, cb.ChatID, cb.MessageID, "❌ PI creation cancelled. Use /createpi to start again.")
	case res.Submitted:
		b.finalize(ctx, cb, e)
	default:
		b.sendPrompt(ctx, cb.ChatID, res.Prompt)
	}
}

// finalize assigns the quote number, persists the pending quote and fans the
// approval request out to the admins. The session survives a failed submit so
// the user can confirm again.
func (b *Bot) finalize(ctx context.Context, cb Callback, e *sessionEntry) {
	q := quoteFromSession(e.s)
	saved, err := b.store.Submit(ctx, q)
	if err != nil {
		log.Printf("bot: submit failed chat_id=%d err=%v", cb.ChatID, err)
		b.send(ctx, cb.ChatID, "❌ Could not submit the quote, please try again.", nil)
		return
	}
	e.s = nil

	t := saved.Totals()
	b.edit(ctx, cb.ChatID, cb.MessageID, strings.Join([]string{
		"✅ Quote submitted",
		"Quote No: " + saved.Number,
		"Customer: " + saved.Customer,
		"Subtotal: " + quote.Money(t.Subtotal) + " Birr",
		"VAT (15%): " + quote.Money(t.VAT) + " Birr",
		"Grand Total: " + quote.Money(t.GrandTotal) + " Birr",
	}, "\n"))

	b.notifyAdmins(ctx, saved)
}

// notifyAdmins broadcasts the new quote with approve/reject buttons. Failures
// for one admin never block the others.
func (b *Bot) notifyAdmins(ctx context.Context, q quote.Quote) {
	t := q.Totals()
	var lines []string
	for _, l := range t.Lines {
		lines = append(lines, "• "+l.Grade+": "+quote.Money(l.UnitPrice)+" × "+quote.Money(l.Quantity)+"m³")
	}
	text := strings.Join([]string{
		"🔔 NEW QUOTE",
		"Quote: " + q.Number,
		"Customer: " + q.Customer,
		"Grades:\n" + strings.Join(lines, "\n"),
		"Subtotal: " + quote.Money(t.Subtotal) + " Birr",
		"VAT (15%): " + quote.Money(t.VAT) + " Birr",
		"Grand Total: " + quote.Money(t.GrandTotal) + " Birr",
		"Extras: " + q.Extras,
	}, "\n")

	markup := telegram.InlineKeyboard{InlineKeyboard: [][]telegram.InlineButton{{
		{Text: "✅ Approve", CallbackData: "approve_" + q.Number},
		{Text: "❌ Reject", CallbackData: "reject_" + q.Number},
	}}}
	for _, adminID := range b.adminIDs {
		if err := b.sender.SendMessage(ctx, adminID, text, markup); err != nil {
			log.Printf("bot: notify admin failed admin_id=%d quote=%s err=%v", adminID, q.Number, err)
		}
	}
}

func (b *Bot) edit(ctx context.Context, chatID, messageID int64, text string) {
	if err := b.sender.EditMessageText(ctx, chatID, messageID, text); err != nil {
		log.Printf("bot: edit failed chat_id=%d message_id=%d err=%v", chatID, messageID, err)
	}
}

func quoteFromSession(s *conversation.Session) quote.Quote {
	return quote.Quote{
		CreatedAt:     s.StartedAt,
		Customer:      s.Customer,
		Location:      s.Location,
		Grades:        s.Grades,
		UnitPrice:     s.UnitPrice,
		Quantity:      s.Quantity,
		Extras:        s.Extras,
		SubmitterID:   s.UserID,
		SubmitterName: s.Username,
	}
}
