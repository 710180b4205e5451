package store

import (
	"context"
	"fmt"

	"cobuilt/quote-bot/internal/domain/quote"
)

// NumberPrefix for issued quote numbers, e.g. RMX-0101.
const NumberPrefix = "RMX"

// CounterSeed is the value the sequence starts from; the first submission
// increments it to 101 and becomes RMX-0101.
const CounterSeed = 100

func FormatNumber(seq int64) string {
	return fmt.Sprintf("%s-%04d", NumberPrefix, seq)
}

// Store is the durable quote repository. Submit must assign the next quote
// number, mark the quote pending and persist it atomically with the counter
// increment: two concurrent submissions never share a number.
type Store interface {
	Submit(ctx context.Context, q quote.Quote) (quote.Quote, error)
	Get(ctx context.Context, number string) (quote.Quote, bool, error)
	Update(ctx context.Context, q quote.Quote) error
	ListByUser(ctx context.Context, userID int64) ([]quote.Quote, error)
	Close()
}
