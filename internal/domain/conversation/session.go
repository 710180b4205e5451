package conversation

import (
	"time"

	"github.com/shopspring/decimal"
)

type Step int

const (
	StepCustomer Step = iota
	StepLocation
	StepGrades
	StepPrice
	StepQuantity
	StepExtras
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepCustomer:
		return "customer"
	case StepLocation:
		return "location"
	case StepGrades:
		return "grades"
	case StepPrice:
		return "price"
	case StepQuantity:
		return "quantity"
	case StepExtras:
		return "extras"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// Session is one user's in-progress draft. It lives only in memory and is
// discarded on submit, cancel or restart.
type Session struct {
	ChatID    int64
	UserID    int64
	Username  string
	StartedAt time.Time

	Step     Step
	Customer string
	Location string
	Grades   []string
	// GradeIndex is the cursor into Grades during the price/quantity loop.
	GradeIndex int
	UnitPrice  map[string]decimal.Decimal
	Quantity   map[string]decimal.Decimal
	Extras     string
}

func NewSession(chatID, userID int64, username string) *Session {
	return &Session{
		ChatID:    chatID,
		UserID:    userID,
		Username:  username,
		StartedAt: time.Now(),
		Step:      StepCustomer,
	}
}

func (s *Session) CurrentGrade() string {
	return s.Grades[s.GradeIndex]
}
