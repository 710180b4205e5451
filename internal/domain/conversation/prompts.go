package conversation

import (
	"fmt"
	"strings"

	"cobuilt/quote-bot/internal/domain/quote"
)

// Reply-keyboard tokens the transport maps back to events.
const (
	BackLabel   = "⬅️ Back"
	CancelLabel = "❌ Cancel"
)

// Callback actions for the review step's inline buttons.
const (
	CallbackSubmit    = "confirm_yes"
	CallbackBack      = "confirm_back"
	CallbackCancel    = "confirm_no"
	CallbackStartOver = "start_over"
)

// Prompt is what the transport should show next: message text plus an
// optional reply keyboard or inline action rows.
type Prompt struct {
	Text           string
	Keyboard       [][]string
	Inline         [][]Button
	RemoveKeyboard bool
}

type Button struct {
	Label string
	Data  string
}

func CustomerPrompt() Prompt {
	return Prompt{
		Text:     "👤 Enter customer/company name:",
		Keyboard: [][]string{{CancelLabel}},
	}
}

func LocationPrompt() Prompt {
	return Prompt{
		Text:     "📍 Enter delivery location:",
		Keyboard: [][]string{{BackLabel, CancelLabel}},
	}
}

func GradesPrompt(errLine string) Prompt {
	text := "🧱 Select concrete grades (comma separated):\n\n" +
		"Examples:\n" +
		"• Single grade: C-25\n" +
		"• Multiple grades: C-25, C-30, C-35\n\n" +
		"Available grades: " + strings.Join(quote.Grades, ", ")
	if errLine != "" {
		text = errLine + "\n\n" + text
	}
	return Prompt{Text: text, Keyboard: gradeKeyboard()}
}

func PricePrompt(grade string) Prompt {
	return Prompt{
		Text:     fmt.Sprintf("💵 Grade: %s\nEnter price per m³:", grade),
		Keyboard: [][]string{{BackLabel, CancelLabel}},
	}
}

func QuantityPrompt(grade string) Prompt {
	return Prompt{
		Text:     fmt.Sprintf("📏 Grade: %s\nEnter quantity in m³:", grade),
		Keyboard: [][]string{{BackLabel, CancelLabel}},
	}
}

func ExtrasPrompt() Prompt {
	return Prompt{
		Text: "🧰 Select extra services (comma separated) or 'None':",
		Keyboard: [][]string{
			quote.ExtraServices,
			{BackLabel, CancelLabel},
		},
	}
}

// ReviewPrompt shows the priced draft with inline submit/back/cancel actions.
func ReviewPrompt(s *Session) Prompt {
	t := quote.Calculate(s.Grades, s.UnitPrice, s.Quantity)

	var lines []string
	for _, l := range t.Lines {
		lines = append(lines, fmt.Sprintf("• %s: %s × %sm³ = %s",
			l.Grade, quote.Money(l.UnitPrice), quote.Money(l.Quantity), quote.Money(l.Total)))
	}

	text := fmt.Sprintf(
		"📋 DRAFT QUOTE\n\n"+
			"👤 Customer: %s\n"+
			"📍 Location: %s\n"+
			"📊 Total Quantity: %sm³\n\n"+
			"🧱 Grades & Pricing:\n%s\n\n"+
			"💰 Subtotal: %s Birr\n"+
			"📊 VAT (15%%): %s Birr\n"+
			"💵 Grand Total: %s Birr\n\n"+
			"🧰 Extras: %s",
		s.Customer, s.Location, quote.Money(t.TotalQuantity),
		strings.Join(lines, "\n"),
		quote.Money(t.Subtotal), quote.Money(t.VAT), quote.Money(t.GrandTotal),
		s.Extras,
	)

	return Prompt{
		Text: text,
		Inline: [][]Button{
			{{Label: "✅ Submit", Data: CallbackSubmit}},
			{{Label: BackLabel, Data: CallbackBack}, {Label: CancelLabel, Data: CallbackCancel}},
		},
		RemoveKeyboard: true,
	}
}

// gradeKeyboard lays the catalog out in rows of four plus a back/cancel row.
func gradeKeyboard() [][]string {
	var rows [][]string
	for i := 0; i < len(quote.Grades); i += 4 {
		end := i + 4
		if end > len(quote.Grades) {
			end = len(quote.Grades)
		}
		rows = append(rows, quote.Grades[i:end])
	}
	rows = append(rows, []string{BackLabel, CancelLabel})
	return rows
}
