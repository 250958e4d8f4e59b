package scryfall_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardscan/internal/services/scryfall"
)

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := scryfall.New(""); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestCardBySetNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/lea/133" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"card","name":"Lightning Bolt","set":"lea","set_name":"Limited Edition Alpha","collector_number":"133","scryfall_uri":"https://scryfall.com/card/lea/133","cardmarket_id":5503,"image_uris":{"normal":"https://img.example/bolt.jpg"}}`))
	}))
	t.Cleanup(server.Close)

	client, err := scryfall.New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	card, err := client.CardBySetNumber(context.Background(), "lea", "133")
	if err != nil {
		t.Fatalf("CardBySetNumber: %v", err)
	}
	if card.Object != scryfall.ObjectCard || card.Name != "Lightning Bolt" {
		t.Fatalf("unexpected card: %+v", card)
	}
	if card.ImageURL() != "https://img.example/bolt.jpg" {
		t.Errorf("ImageURL = %q", card.ImageURL())
	}
	if card.CardmarketID != 5503 {
		t.Errorf("CardmarketID = %d", card.CardmarketID)
	}
}

func TestCardBySetNumberNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","status":404}`))
	}))
	t.Cleanup(server.Close)

	client, err := scryfall.New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.CardBySetNumber(context.Background(), "xxx", "1"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestSearchPrints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/search" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "set:lea cn:133" {
			t.Fatalf("q = %q", got)
		}
		if got := r.URL.Query().Get("unique"); got != "prints" {
			t.Fatalf("unique = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","total_cards":1,"data":[{"object":"card","name":"Lightning Bolt","image_uris":{"normal":"https://img.example/bolt.jpg"}}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := scryfall.New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	list, err := client.SearchPrints(context.Background(), "set:lea cn:133")
	if err != nil {
		t.Fatalf("SearchPrints: %v", err)
	}
	if list.Object != scryfall.ObjectList || len(list.Data) != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestSearchPrintsEmptyQuery(t *testing.T) {
	client, err := scryfall.New("https://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.SearchPrints(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestImageURLFallsBackToFirstFace(t *testing.T) {
	card := scryfall.Card{
		CardFaces: []scryfall.CardFace{
			{ImageURIs: &scryfall.ImageURIs{Normal: "https://img.example/front.jpg"}},
			{ImageURIs: &scryfall.ImageURIs{Normal: "https://img.example/back.jpg"}},
		},
	}
	if got := card.ImageURL(); got != "https://img.example/front.jpg" {
		t.Errorf("ImageURL = %q", got)
	}
	if got := (scryfall.Card{}).ImageURL(); got != "" {
		t.Errorf("ImageURL on empty card = %q", got)
	}
}
