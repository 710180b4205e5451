package bot

import (
	"context"
	"log"
	"strings"

	"cobuilt/quote-bot/internal/domain/approval"
	"cobuilt/quote-bot/internal/domain/conversation"
	"cobuilt/quote-bot/internal/infra/telegram"
)

// handleDecision runs an approve_/reject_ callback through the approval
// workflow and delivers the result to both the admin and the submitter.
func (b *Bot) handleDecision(ctx context.Context, cb Callback) {
	action, number, ok := strings.Cut(cb.Data, "_")
	if !ok {
		return
	}

	var (
		dec approval.Decision
		err error
	)
	if action == "approve" {
		dec, err = b.approval.Approve(ctx, cb.UserID, cb.Username, number)
	} else {
		dec, err = b.approval.Reject(ctx, cb.UserID, cb.Username, number)
	}
	if err != nil {
		log.Printf("bot: decision failed quote=%s action=%s err=%v", number, action, err)
		b.send(ctx, cb.ChatID, "❌ Could not process the decision, please try again.", nil)
		return
	}

	switch dec.Outcome {
	case approval.OutcomeNotAuthorized:
		if err := b.sender.AnswerCallback(ctx, cb.ID, "⛔ Not authorized.", true); err != nil {
			log.Printf("bot: deny alert failed chat_id=%d err=%v", cb.ChatID, err)
		}
	case approval.OutcomeNotFound:
		b.edit(ctx, cb.ChatID, cb.MessageID, "❌ Quote not found.")
	case approval.OutcomeApproved:
		b.edit(ctx, cb.ChatID, cb.MessageID, cb.MessageText+"\n✅ APPROVED by @"+dec.Quote.ApprovedBy)
		b.deliverApproved(ctx, dec)
	case approval.OutcomeRejected:
		b.edit(ctx, cb.ChatID, cb.MessageID, cb.MessageText+"\n❌ REJECTED by @"+dec.Quote.RejectedBy)
		b.send(ctx, dec.Quote.SubmitterID,
			"❌ Your quote "+dec.Quote.Number+" was rejected.\n\nClick below to create a new quote:",
			startOverMarkup())
	}
}

// deliverApproved renders the PDF and sends it to the submitter. A render
// failure degrades to a text notification so the approval itself stands.
func (b *Bot) deliverApproved(ctx context.Context, dec approval.Decision) {
	q := dec.Quote
	data, err := b.pdf.Generate(q)
	if err != nil {
		log.Printf("bot: pdf render failed quote=%s err=%v", q.Number, err)
		b.send(ctx, q.SubmitterID, "✅ Your quote "+q.Number+" was approved. The document will follow shortly.", startOverMarkup())
		return
	}
	caption := "✅ Quote Approved\nQuote No: " + q.Number + "\n\nClick below to create a new quote:"
	if err := b.sender.SendDocument(ctx, q.SubmitterID, "Quote_"+q.Number+".pdf", data, caption, startOverMarkup()); err != nil {
		log.Printf("bot: send pdf failed quote=%s user_id=%d err=%v", q.Number, q.SubmitterID, err)
	}
}

func startOverMarkup() telegram.InlineKeyboard {
	return telegram.InlineKeyboard{InlineKeyboard: [][]telegram.InlineButton{{
		{Text: "🔄 Create New Quote", CallbackData: conversation.CallbackStartOver},
	}}}
}
