package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) Event { return Event{Kind: EventText, Text: s} }
func back() Event         { return Event{Kind: EventBack} }
func cancel() Event       { return Event{Kind: EventCancel} }
func confirm() Event      { return Event{Kind: EventConfirm} }

func newTestSession() *Session {
	return NewSession(1, 42, "builder")
}

// feed drives the session through a sequence of events, requiring each step
// to neither cancel nor submit.
func feed(t *testing.T, s *Session, events ...Event) Result {
	t.Helper()
	var res Result
	for _, ev := range events {
		res = Advance(s, ev)
		require.False(t, res.Cancelled, "unexpected cancel at step %s", s.Step)
		require.False(t, res.Submitted, "unexpected submit at step %s", s.Step)
	}
	return res
}

func TestHappyPath(t *testing.T) {
	s := newTestSession()
	res := feed(t, s,
		text("Acme Construction"),
		text("  Addis Ababa  "),
		text("c-25, c-30"),
		text("3,500"),
		text("10"),
		text("3800"),
		text("5"),
		text("None"),
	)

	assert.Equal(t, StepReview, s.Step)
	assert.Equal(t, "Acme Construction", s.Customer)
	assert.Equal(t, "Addis Ababa", s.Location, "location is trimmed")
	assert.Equal(t, []string{"C-25", "C-30"}, s.Grades)
	assert.Equal(t, "None", s.Extras)
	assert.Equal(t, "3500", s.UnitPrice["C-25"].String(), "thousands separator stripped")
	assert.Contains(t, res.Prompt.Text, "54,000.00")
	assert.Contains(t, res.Prompt.Text, "8,100.00")
	assert.Contains(t, res.Prompt.Text, "62,100.00")
	require.Len(t, res.Prompt.Inline, 2, "submit row plus back/cancel row")

	res = Advance(s, confirm())
	assert.True(t, res.Submitted)
}

func TestCustomerRequired(t *testing.T) {
	s := newTestSession()
	res := Advance(s, text("   "))
	assert.Equal(t, StepCustomer, s.Step)
	assert.Contains(t, res.Prompt.Text, "Customer name is required")
	assert.Empty(t, s.Customer)
}

func TestLocationRequired(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"))
	res := Advance(s, text(""))
	assert.Equal(t, StepLocation, s.Step)
	assert.Contains(t, res.Prompt.Text, "Delivery location is required")
}

func TestInvalidGradesAllReported(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"))

	res := Advance(s, text("C-25, C-99, BOGUS"))
	assert.Equal(t, StepGrades, s.Step)
	assert.Contains(t, res.Prompt.Text, "Invalid grades: C-99, BOGUS")
	assert.Nil(t, s.Grades, "grades stay unset on invalid input")

	// One invalid token alone is reported exactly.
	res = Advance(s, text("C-99"))
	assert.Contains(t, res.Prompt.Text, "Invalid grades: C-99")
	assert.Nil(t, s.Grades)
}

func TestGradesDeduped(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25, C-25, c-25"))
	assert.Equal(t, []string{"C-25"}, s.Grades)
	assert.Equal(t, StepPrice, s.Step)
}

func TestGradesAtLeastOne(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"))
	res := Advance(s, text(" , ,"))
	assert.Equal(t, StepGrades, s.Step)
	assert.Contains(t, res.Prompt.Text, "Enter at least one grade")
}

func TestBadAmountsReprompt(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25"))

	res := Advance(s, text("abc"))
	assert.Equal(t, StepPrice, s.Step)
	assert.Contains(t, res.Prompt.Text, "valid price for C-25")
	assert.Empty(t, s.UnitPrice)

	res = Advance(s, text("-5"))
	assert.Equal(t, StepPrice, s.Step)
	assert.Contains(t, res.Prompt.Text, "valid price for C-25")

	feed(t, s, text("3500"))
	res = Advance(s, text("-1"))
	assert.Equal(t, StepQuantity, s.Step)
	assert.Contains(t, res.Prompt.Text, "valid quantity for C-25")
	assert.Empty(t, s.Quantity)
}

func TestZeroAmountsAccepted(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25"), text("0"), text("0"))
	assert.Equal(t, StepExtras, s.Step)
}

func TestBackThroughLineItemLoop(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25, C-30"), text("3500"), text("10"))

	// Now at price for C-30 (index 1).
	require.Equal(t, StepPrice, s.Step)
	require.Equal(t, 1, s.GradeIndex)

	// Back from price at index>0 goes to the previous grade's quantity.
	res := Advance(s, back())
	assert.Equal(t, StepQuantity, s.Step)
	assert.Equal(t, 0, s.GradeIndex)
	assert.Contains(t, res.Prompt.Text, "C-25")

	// Back from quantity returns to the same grade's price.
	res = Advance(s, back())
	assert.Equal(t, StepPrice, s.Step)
	assert.Equal(t, 0, s.GradeIndex)
	assert.Contains(t, res.Prompt.Text, "C-25")

	// Back from price at index 0 returns to grade selection.
	res = Advance(s, back())
	assert.Equal(t, StepGrades, s.Step)
	assert.Contains(t, res.Prompt.Text, "Select concrete grades")
}

func TestBackFromExtrasHitsLastGradeQuantity(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25, C-30"),
		text("3500"), text("10"), text("3800"), text("5"))

	require.Equal(t, StepExtras, s.Step)
	res := Advance(s, back())
	assert.Equal(t, StepQuantity, s.Step)
	assert.Equal(t, 1, s.GradeIndex)
	assert.Contains(t, res.Prompt.Text, "C-30")
}

func TestBackFromReview(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25"), text("3500"), text("10"), text("None"))

	require.Equal(t, StepReview, s.Step)
	res := Advance(s, back())
	assert.Equal(t, StepExtras, s.Step)
	assert.Contains(t, res.Prompt.Text, "extra services")
}

func TestReviewIgnoresStrayText(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25"), text("3500"), text("10"), text("None"))

	res := Advance(s, text("hello?"))
	assert.Equal(t, StepReview, s.Step)
	assert.Contains(t, res.Prompt.Text, "DRAFT QUOTE")
	assert.False(t, res.Submitted)
}

func TestCancelAnywhere(t *testing.T) {
	s := newTestSession()
	res := Advance(s, cancel())
	assert.True(t, res.Cancelled)

	s = newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25"), text("3500"))
	res = Advance(s, cancel())
	assert.True(t, res.Cancelled)
}

func TestRestartIsFresh(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25"), text("3500"), text("10"))

	s2 := NewSession(s.ChatID, s.UserID, s.Username)
	assert.Equal(t, StepCustomer, s2.Step)
	assert.Empty(t, s2.Customer)
	assert.Nil(t, s2.Grades)
	assert.Nil(t, s2.UnitPrice)
	assert.Zero(t, s2.GradeIndex)
}

func TestNormalizeExtras(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"None", "None"},
		{"none", "None"},
		{" NONE ", "None"},
		{"Elephant pump", "Elephant pump"},
		{"Elephant pump, Skip", "Elephant pump, Skip"},
		{"Elephant pump, none, Skip", "Elephant pump, Skip"},
		{", ,", "None"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeExtras(tc.in), "normalizeExtras(%q)", tc.in)
	}
}

func TestPriceAndQuantityCoverGradesExactly(t *testing.T) {
	s := newTestSession()
	feed(t, s, text("Acme"), text("Addis"), text("C-25, C-30, C-35"),
		text("1"), text("2"), text("3"), text("4"), text("5"), text("6"))

	require.Equal(t, StepExtras, s.Step)
	assert.Len(t, s.UnitPrice, len(s.Grades))
	assert.Len(t, s.Quantity, len(s.Grades))
	for _, g := range s.Grades {
		assert.Contains(t, s.UnitPrice, g)
		assert.Contains(t, s.Quantity, g)
	}
}
