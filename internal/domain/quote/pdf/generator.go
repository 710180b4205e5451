package pdf

import "cobuilt/quote-bot/internal/domain/quote"

type Generator interface {
	Generate(q quote.Quote) ([]byte, error)
}
