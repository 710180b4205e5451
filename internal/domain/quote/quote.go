package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Grades is the fixed catalog of concrete mix codes a quote can include.
// Order matters: keyboards and PDF line items follow it.
var Grades = []string{"C-15", "C-20", "C-25", "C-30", "C-35", "C-37", "C-40", "C-45", "C-50"}

// ExtraServices offered on top of plain delivery. "None" is the sentinel.
var ExtraServices = []string{"Elephant pump", "Vibrator", "Skip", "None"}

func ValidGrade(code string) bool {
	for _, g := range Grades {
		if g == code {
			return true
		}
	}
	return false
}

type Quote struct {
	Number    string    `json:"number"`
	CreatedAt time.Time `json:"created_at"`

	Customer string `json:"customer"`
	Location string `json:"location"`

	Grades    []string                   `json:"grades"`
	UnitPrice map[string]decimal.Decimal `json:"unit_price"`
	Quantity  map[string]decimal.Decimal `json:"quantity"`
	Extras    string                     `json:"extras"`

	Status Status `json:"status"`

	SubmitterID   int64  `json:"submitter_id"`
	SubmitterName string `json:"submitter_name"`

	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	RejectedBy string     `json:"rejected_by,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}
