package catalog

import (
	"context"
	"errors"
	"testing"

	"cardscan/internal/cards"
	"cardscan/internal/services/scryfall"
)

type fakeSearcher struct {
	directCard *scryfall.Card
	directErr  error
	lists      map[string]*scryfall.List
	searchErr  error

	directCalls []string
	queries     []string
}

func (f *fakeSearcher) CardBySetNumber(_ context.Context, setCode, collectorNumber string) (*scryfall.Card, error) {
	f.directCalls = append(f.directCalls, setCode+"/"+collectorNumber)
	if f.directErr != nil {
		return nil, f.directErr
	}
	return f.directCard, nil
}

func (f *fakeSearcher) SearchPrints(_ context.Context, query string) (*scryfall.List, error) {
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if list, ok := f.lists[query]; ok {
		return list, nil
	}
	return &scryfall.List{Object: scryfall.ObjectList}, nil
}

func cardWithImage(name, image string) *scryfall.Card {
	return &scryfall.Card{
		Object:       scryfall.ObjectCard,
		Name:         name,
		SetName:      "Mirrodin",
		ScryfallURI:  "https://scryfall.com/card/mrd/72",
		CardmarketID: 1234,
		ImageURIs:    &scryfall.ImageURIs{Normal: image},
	}
}

func TestResolveDirectHitStopsChain(t *testing.T) {
	searcher := &fakeSearcher{
		directCard: cardWithImage("Duplicant", "https://img.example/duplicant.jpg"),
	}
	resolver := NewResolver(searcher, nil)

	result := resolver.Resolve(context.Background(), cards.Card{
		Name:            "Duplicant",
		SetCode:         " MRD ",
		CollectorNumber: "72",
	})

	if !result.Found() {
		t.Fatal("expected a hit")
	}
	if result.Endpoint != "direct" {
		t.Fatalf("endpoint = %q, want direct", result.Endpoint)
	}
	if result.Hit.ImageURL != "https://img.example/duplicant.jpg" {
		t.Fatalf("unexpected image url %q", result.Hit.ImageURL)
	}
	if result.Hit.CardmarketID != 1234 {
		t.Fatalf("cardmarket id = %d, want 1234", result.Hit.CardmarketID)
	}
	if len(searcher.directCalls) != 1 || searcher.directCalls[0] != "mrd/72" {
		t.Fatalf("direct calls = %v, want one normalized lookup", searcher.directCalls)
	}
	if len(searcher.queries) != 0 {
		t.Fatalf("search endpoints invoked after direct hit: %v", searcher.queries)
	}
}

func TestResolveFallsThroughToSetNumberSearch(t *testing.T) {
	searcher := &fakeSearcher{
		directErr: errors.New("scryfall card lookup returned 404"),
		lists: map[string]*scryfall.List{
			"set:mrd cn:72": {
				Object: scryfall.ObjectList,
				Data:   []scryfall.Card{*cardWithImage("Duplicant", "https://img.example/d.jpg")},
			},
		},
	}
	resolver := NewResolver(searcher, nil)

	result := resolver.Resolve(context.Background(), cards.Card{
		Name:            "Duplicant",
		SetCode:         "mrd",
		CollectorNumber: "72",
	})

	if result.Endpoint != "search_set_number" {
		t.Fatalf("endpoint = %q, want search_set_number", result.Endpoint)
	}
	if len(searcher.queries) != 1 {
		t.Fatalf("queries = %v, want exactly one", searcher.queries)
	}
}

func TestResolveBlankIdentifiersGoStraightToNameSearch(t *testing.T) {
	searcher := &fakeSearcher{
		lists: map[string]*scryfall.List{
			"Duplicant": {
				Object: scryfall.ObjectList,
				Data:   []scryfall.Card{*cardWithImage("Duplicant", "https://img.example/d.jpg")},
			},
		},
	}
	resolver := NewResolver(searcher, nil)

	result := resolver.Resolve(context.Background(), cards.Card{Name: "Duplicant"})

	if result.Endpoint != "search_name" {
		t.Fatalf("endpoint = %q, want search_name", result.Endpoint)
	}
	if len(searcher.directCalls) != 0 {
		t.Fatalf("direct lookup attempted without identifiers: %v", searcher.directCalls)
	}
	if len(searcher.queries) != 1 || searcher.queries[0] != "Duplicant" {
		t.Fatalf("queries = %v, want only the name search", searcher.queries)
	}
}

func TestResolveTotalMissIsNotAnError(t *testing.T) {
	searcher := &fakeSearcher{
		directErr: errors.New("scryfall card lookup returned 404"),
	}
	resolver := NewResolver(searcher, nil)

	result := resolver.Resolve(context.Background(), cards.Card{
		Name:            "Duplicant",
		SetCode:         "mrd",
		CollectorNumber: "72",
	})

	if result.Found() {
		t.Fatal("expected a miss")
	}
	want := []string{"set:mrd cn:72", "set:mrd Duplicant", "Duplicant"}
	if len(searcher.queries) != len(want) {
		t.Fatalf("queries = %v, want %v", searcher.queries, want)
	}
	for i, q := range want {
		if searcher.queries[i] != q {
			t.Fatalf("query[%d] = %q, want %q", i, searcher.queries[i], q)
		}
	}
}

func TestResolveSkipsCandidatesWithoutImages(t *testing.T) {
	searcher := &fakeSearcher{
		directCard: &scryfall.Card{Object: scryfall.ObjectCard, Name: "Duplicant"},
		lists: map[string]*scryfall.List{
			"set:mrd cn:72": {
				Object: scryfall.ObjectList,
				Data:   []scryfall.Card{*cardWithImage("Duplicant", "https://img.example/d.jpg")},
			},
		},
	}
	resolver := NewResolver(searcher, nil)

	result := resolver.Resolve(context.Background(), cards.Card{
		Name:            "Duplicant",
		SetCode:         "mrd",
		CollectorNumber: "72",
	})

	if result.Endpoint != "search_set_number" {
		t.Fatalf("endpoint = %q, want search_set_number past imageless direct hit", result.Endpoint)
	}
}

func TestResolveEmptyCardResolvesToMiss(t *testing.T) {
	searcher := &fakeSearcher{}
	resolver := NewResolver(searcher, nil)

	result := resolver.Resolve(context.Background(), cards.Card{})

	if result.Found() {
		t.Fatal("expected a miss for an empty draft")
	}
	if len(searcher.directCalls) != 0 || len(searcher.queries) != 0 {
		t.Fatalf("no endpoints should be invoked, got direct=%v queries=%v", searcher.directCalls, searcher.queries)
	}
}

func TestHitFromCardDropsNonPositiveCardmarketID(t *testing.T) {
	card := *cardWithImage("Duplicant", "https://img.example/d.jpg")
	card.CardmarketID = 0
	hit := hitFromCard(card)
	if hit == nil {
		t.Fatal("expected a hit")
	}
	if hit.CardmarketID != 0 {
		t.Fatalf("cardmarket id = %d, want 0 sentinel", hit.CardmarketID)
	}
}
