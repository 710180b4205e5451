// Package conversation implements the guided quote-entry flow as a state
// machine over typed events. It performs no I/O: the caller feeds events in
// and delivers the returned prompt however it likes.
package conversation

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"cobuilt/quote-bot/internal/domain/quote"
)

type EventKind int

const (
	// EventText carries free text typed by the user.
	EventText EventKind = iota
	// EventBack asks for the previous step.
	EventBack
	// EventCancel aborts the flow from any step.
	EventCancel
	// EventConfirm submits the draft from the review step.
	EventConfirm
)

type Event struct {
	Kind EventKind
	Text string
}

// Result of advancing the machine by one event. When Submitted is set the
// session holds a complete draft and the caller finalizes it; when Cancelled
// is set the caller discards the session. Otherwise Prompt is what to show
// next (possibly a re-prompt of the same step).
type Result struct {
	Prompt    Prompt
	Submitted bool
	Cancelled bool
}

// Advance applies one event to the session and returns what happens next.
// The session is only mutated on valid input.
func Advance(s *Session, ev Event) Result {
	if ev.Kind == EventCancel {
		return Result{Cancelled: true}
	}
	switch s.Step {
	case StepCustomer:
		return advanceCustomer(s, ev)
	case StepLocation:
		return advanceLocation(s, ev)
	case StepGrades:
		return advanceGrades(s, ev)
	case StepPrice:
		return advancePrice(s, ev)
	case StepQuantity:
		return advanceQuantity(s, ev)
	case StepExtras:
		return advanceExtras(s, ev)
	case StepReview:
		return advanceReview(s, ev)
	}
	return Result{Prompt: CustomerPrompt()}
}

func advanceCustomer(s *Session, ev Event) Result {
	if ev.Kind == EventBack {
		// First step, nowhere to go.
		return Result{Prompt: CustomerPrompt()}
	}
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		p := CustomerPrompt()
		p.Text = "❌ Customer name is required.\n\n" + p.Text
		return Result{Prompt: p}
	}
	s.Customer = text
	s.Step = StepLocation
	return Result{Prompt: LocationPrompt()}
}

func advanceLocation(s *Session, ev Event) Result {
	if ev.Kind == EventBack {
		s.Step = StepCustomer
		return Result{Prompt: CustomerPrompt()}
	}
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		p := LocationPrompt()
		p.Text = "❌ Delivery location is required.\n\n" + p.Text
		return Result{Prompt: p}
	}
	s.Location = text
	s.Step = StepGrades
	return Result{Prompt: GradesPrompt("")}
}

func advanceGrades(s *Session, ev Event) Result {
	if ev.Kind == EventBack {
		s.Step = StepLocation
		return Result{Prompt: LocationPrompt()}
	}
	valid, invalid := parseGrades(ev.Text)
	if len(invalid) > 0 {
		return Result{Prompt: GradesPrompt("❌ Invalid grades: " + strings.Join(invalid, ", "))}
	}
	if len(valid) == 0 {
		return Result{Prompt: GradesPrompt("❌ Enter at least one grade.")}
	}
	s.Grades = valid
	s.GradeIndex = 0
	s.UnitPrice = make(map[string]decimal.Decimal, len(valid))
	s.Quantity = make(map[string]decimal.Decimal, len(valid))
	s.Step = StepPrice
	return Result{Prompt: PricePrompt(s.CurrentGrade())}
}

func advancePrice(s *Session, ev Event) Result {
	if ev.Kind == EventBack {
		if s.GradeIndex == 0 {
			s.Step = StepGrades
			return Result{Prompt: GradesPrompt("")}
		}
		// Back from a later grade's price lands on the previous grade's
		// quantity, not its price.
		s.GradeIndex--
		s.Step = StepQuantity
		return Result{Prompt: QuantityPrompt(s.CurrentGrade())}
	}
	grade := s.CurrentGrade()
	amount, err := parseAmount(ev.Text)
	if err != nil {
		p := PricePrompt(grade)
		p.Text = "❌ Enter a valid price for " + grade + ":"
		return Result{Prompt: p}
	}
	s.UnitPrice[grade] = amount
	s.Step = StepQuantity
	return Result{Prompt: QuantityPrompt(grade)}
}

func advanceQuantity(s *Session, ev Event) Result {
	grade := s.CurrentGrade()
	if ev.Kind == EventBack {
		s.Step = StepPrice
		return Result{Prompt: PricePrompt(grade)}
	}
	amount, err := parseAmount(ev.Text)
	if err != nil {
		p := QuantityPrompt(grade)
		p.Text = "❌ Enter a valid quantity for " + grade + ":"
		return Result{Prompt: p}
	}
	s.Quantity[grade] = amount
	s.GradeIndex++
	if s.GradeIndex < len(s.Grades) {
		s.Step = StepPrice
		return Result{Prompt: PricePrompt(s.CurrentGrade())}
	}
	s.Step = StepExtras
	return Result{Prompt: ExtrasPrompt()}
}

func advanceExtras(s *Session, ev Event) Result {
	if ev.Kind == EventBack {
		s.GradeIndex = len(s.Grades) - 1
		s.Step = StepQuantity
		return Result{Prompt: QuantityPrompt(s.CurrentGrade())}
	}
	s.Extras = normalizeExtras(ev.Text)
	s.Step = StepReview
	return Result{Prompt: ReviewPrompt(s)}
}

func advanceReview(s *Session, ev Event) Result {
	switch ev.Kind {
	case EventConfirm:
		return Result{Submitted: true}
	case EventBack:
		s.Step = StepExtras
		return Result{Prompt: ExtrasPrompt()}
	default:
		// Stray text while the inline buttons are up: show the draft again.
		return Result{Prompt: ReviewPrompt(s)}
	}
}

// parseGrades splits comma-separated grade tokens, uppercases them, drops
// duplicates preserving first occurrence and collects every unknown token so
// they can all be reported in one message.
func parseGrades(input string) (valid, invalid []string) {
	cleaned := strings.ReplaceAll(input, " ", "")
	seen := make(map[string]bool)
	for _, tok := range strings.Split(cleaned, ",") {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if !quote.ValidGrade(tok) {
			invalid = append(invalid, tok)
			continue
		}
		if !seen[tok] {
			seen[tok] = true
			valid = append(valid, tok)
		}
	}
	return valid, invalid
}

// parseAmount accepts plain or comma-grouped numbers ("3500", "3,500.50")
// and rejects negatives and non-numeric text.
func parseAmount(input string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(input), ",", "")
	if cleaned == "" {
		return decimal.Decimal{}, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errors.New("negative amount")
	}
	return d, nil
}

// normalizeExtras collapses the user's extras text to the "None" sentinel or
// a comma-joined list with any "none" entries dropped.
func normalizeExtras(input string) string {
	text := strings.TrimSpace(input)
	if strings.EqualFold(text, "none") {
		return "None"
	}
	var kept []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "none") {
			continue
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return "None"
	}
	return strings.Join(kept, ", ")
}
