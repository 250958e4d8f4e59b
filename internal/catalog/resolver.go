package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cardscan/internal/cards"
	"cardscan/internal/logging"
	"cardscan/internal/services/scryfall"
)

// Hit captures the catalog metadata accepted from a lookup attempt.
type Hit struct {
	ImageURL     string `json:"image_url"`
	DetailURL    string `json:"detail_url"`
	SetName      string `json:"set_name,omitempty"`
	CardmarketID int64  `json:"cardmarket_id,omitempty"`
}

// Result is the resolver outcome. A zero Result means no endpoint produced
// a usable image.
type Result struct {
	Hit      *Hit
	Endpoint string
}

// Found reports whether any attempt produced a hit.
func (r Result) Found() bool {
	return r.Hit != nil
}

// attempt is one lookup strategy. It returns nil on a miss; errors are
// reported so the loop can log them, but both advance to the next attempt.
type attempt struct {
	name string
	run  func(context.Context) (*Hit, error)
}

// Resolver walks the attempt chain against a Scryfall searcher.
type Resolver struct {
	client scryfall.Searcher
	logger *slog.Logger
}

// NewResolver builds a resolver. A nil logger is replaced with a no-op.
func NewResolver(client scryfall.Searcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// Resolve runs the attempts strictly in order and stops at the first hit.
// Attempt order:
//  1. direct lookup by set and collector number
//  2. structured search set:<code> cn:<number>
//  3. structured search set:<code> <name>
//  4. free-text search by name
//
// Attempts 1-3 require both set code and collector number; the name search
// always runs last when nothing has matched yet.
func (r *Resolver) Resolve(ctx context.Context, card cards.Card) Result {
	for _, a := range r.buildAttempts(card) {
		hit, err := a.run(ctx)
		if err != nil {
			// A failed endpoint is a miss, not an error; keep walking.
			r.logger.Debug("catalog attempt failed",
				logging.String(logging.FieldEndpoint, a.name),
				logging.Error(err),
			)
			continue
		}
		if hit == nil {
			continue
		}
		r.logger.Debug("catalog attempt matched",
			logging.String(logging.FieldEndpoint, a.name),
			logging.String("image_url", hit.ImageURL),
		)
		return Result{Hit: hit, Endpoint: a.name}
	}
	return Result{}
}

func (r *Resolver) buildAttempts(card cards.Card) []attempt {
	setCode := strings.ToLower(strings.TrimSpace(card.SetCode))
	number := strings.TrimSpace(card.CollectorNumber)
	name := strings.TrimSpace(card.Name)

	var attempts []attempt
	if setCode != "" && number != "" {
		// Direct identifiers are case-insensitive by catalog convention.
		directNumber := strings.ToLower(number)
		attempts = append(attempts,
			attempt{
				name: "direct",
				run: func(ctx context.Context) (*Hit, error) {
					return r.direct(ctx, setCode, directNumber)
				},
			},
			attempt{
				name: "search_set_number",
				run: func(ctx context.Context) (*Hit, error) {
					return r.search(ctx, fmt.Sprintf("set:%s cn:%s", setCode, number))
				},
			},
		)
		if name != "" {
			attempts = append(attempts, attempt{
				name: "search_set_name",
				run: func(ctx context.Context) (*Hit, error) {
					return r.search(ctx, fmt.Sprintf("set:%s %s", setCode, name))
				},
			})
		}
	}
	attempts = append(attempts, attempt{
		name: "search_name",
		run: func(ctx context.Context) (*Hit, error) {
			if name == "" {
				return nil, nil
			}
			return r.search(ctx, name)
		},
	})
	return attempts
}

func (r *Resolver) direct(ctx context.Context, setCode, number string) (*Hit, error) {
	card, err := r.client.CardBySetNumber(ctx, setCode, number)
	if err != nil {
		return nil, err
	}
	if card == nil || card.Object != scryfall.ObjectCard {
		return nil, nil
	}
	return hitFromCard(*card), nil
}

func (r *Resolver) search(ctx context.Context, query string) (*Hit, error) {
	list, err := r.client.SearchPrints(ctx, query)
	if err != nil {
		return nil, err
	}
	if list == nil || list.Object != scryfall.ObjectList || len(list.Data) == 0 {
		return nil, nil
	}
	return hitFromCard(list.Data[0]), nil
}

// hitFromCard accepts a candidate only when it carries a non-blank normal
// image. The marketplace id is kept only when positive.
func hitFromCard(card scryfall.Card) *Hit {
	image := card.ImageURL()
	if image == "" {
		return nil
	}
	hit := &Hit{
		ImageURL:  image,
		DetailURL: strings.TrimSpace(card.ScryfallURI),
		SetName:   strings.TrimSpace(card.SetName),
	}
	if card.CardmarketID > 0 {
		hit.CardmarketID = card.CardmarketID
	}
	return hit
}
