// Package approval moves submitted quotes through their terminal states.
// Only actors on the static admin allow-list may decide; a decided quote is
// never moved back to pending. Re-deciding an already-terminal quote is not
// guarded and simply overwrites the decider and timestamp.
package approval

import (
	"context"
	"time"

	"cobuilt/quote-bot/internal/domain/quote"
	"cobuilt/quote-bot/internal/infra/store"
)

type Outcome int

const (
	OutcomeApproved Outcome = iota
	OutcomeRejected
	OutcomeNotAuthorized
	OutcomeNotFound
)

type Decision struct {
	Outcome Outcome
	Quote   quote.Quote
}

type Service struct {
	store  store.Store
	admins map[int64]struct{}
}

func New(st store.Store, adminIDs []int64) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Service{store: st, admins: admins}
}

func (s *Service) IsAdmin(actorID int64) bool {
	_, ok := s.admins[actorID]
	return ok
}

func (s *Service) Approve(ctx context.Context, actorID int64, actorName, number string) (Decision, error) {
	return s.decide(ctx, actorID, actorName, number, quote.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, actorID int64, actorName, number string) (Decision, error) {
	return s.decide(ctx, actorID, actorName, number, quote.StatusRejected)
}

func (s *Service) decide(ctx context.Context, actorID int64, actorName, number string, status quote.Status) (Decision, error) {
	if !s.IsAdmin(actorID) {
		return Decision{Outcome: OutcomeNotAuthorized}, nil
	}
	q, ok, err := s.store.Get(ctx, number)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Decision{Outcome: OutcomeNotFound}, nil
	}

	now := time.Now()
	q.Status = status
	if status == quote.StatusApproved {
		q.ApprovedBy = actorName
		q.ApprovedAt = &now
	} else {
		q.RejectedBy = actorName
		q.RejectedAt = &now
	}
	if err := s.store.Update(ctx, q); err != nil {
		return Decision{}, err
	}

	out := OutcomeApproved
	if status == quote.StatusRejected {
		out = OutcomeRejected
	}
	return Decision{Outcome: out, Quote: q}, nil
}
