package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"cardscan/internal/cards"
	"cardscan/internal/catalog"
	"cardscan/internal/extraction"
	"cardscan/internal/logging"
	"cardscan/internal/reconcile"
	"cardscan/internal/services"
)

// Phase is the observable processing state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseProcessing Phase = "processing"
	PhaseReady      Phase = "ready"
)

// EnrichmentState tracks the background catalog lookup for the current draft.
type EnrichmentState string

const (
	EnrichmentNone     EnrichmentState = ""
	EnrichmentPending  EnrichmentState = "pending"
	EnrichmentFound    EnrichmentState = "found"
	EnrichmentNotFound EnrichmentState = "not_found"
)

// Event types published on the pipeline channel.
const (
	EventStateChanged   = "state_changed"
	EventHistoryChanged = "history_changed"
)

// Event is a state broadcast. HistoryChanged events carry the snapshot taken
// right after the history mutation.
type Event struct {
	Type     string   `json:"type"`
	Snapshot Snapshot `json:"snapshot"`
}

// Snapshot is a point-in-time copy of the pipeline state.
type Snapshot struct {
	Phase        Phase           `json:"phase"`
	CaptureToken string          `json:"capture_token,omitempty"`
	Draft        *cards.Card     `json:"draft,omitempty"`
	Enrichment   EnrichmentState `json:"enrichment,omitempty"`
	Catalog      *catalog.Hit    `json:"catalog,omitempty"`
	Message      string          `json:"message,omitempty"`
}

// Recognizer produces raw model text from a card photo.
type Recognizer interface {
	Recognize(ctx context.Context, imageBytes []byte) (string, error)
}

// Resolver enriches a draft with catalog metadata.
type Resolver interface {
	Resolve(ctx context.Context, card cards.Card) catalog.Result
}

// Finalizer persists a reconciled draft.
type Finalizer interface {
	FinalizeNew(ctx context.Context, draft cards.Card, ov reconcile.Overrides) (cards.Card, error)
}

const eventBuffer = 32

// Pipeline owns the capture state machine.
type Pipeline struct {
	recognizer Recognizer
	resolver   Resolver
	gate       Finalizer
	logger     *slog.Logger

	mu         sync.Mutex
	phase      Phase
	token      string
	draft      *cards.Card
	enrichment EnrichmentState
	hit        *catalog.Hit
	message    string

	events chan Event
	wg     sync.WaitGroup
}

// New constructs a pipeline in the Idle phase.
func New(recognizer Recognizer, resolver Resolver, gate Finalizer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		recognizer: recognizer,
		resolver:   resolver,
		gate:       gate,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		phase:      PhaseIdle,
		events:     make(chan Event, eventBuffer),
	}
}

// Events returns the broadcast channel. Slow consumers lose events rather
// than blocking the pipeline.
func (p *Pipeline) Events() <-chan Event {
	return p.events
}

// Snapshot returns a copy of the current state.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pipeline) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:        p.phase,
		CaptureToken: p.token,
		Enrichment:   p.enrichment,
		Message:      p.message,
	}
	if p.draft != nil {
		draftCopy := *p.draft
		snap.Draft = &draftCopy
	}
	if p.hit != nil {
		hitCopy := *p.hit
		snap.Catalog = &hitCopy
	}
	return snap
}

func (p *Pipeline) publishLocked(eventType string) {
	event := Event{Type: eventType, Snapshot: p.snapshotLocked()}
	select {
	case p.events <- event:
	default:
		p.logger.Warn("event dropped, consumer too slow", logging.String("type", eventType))
	}
}

// StartCapture runs recognition and parsing synchronously, replaces any
// in-flight capture, and kicks off background enrichment for the new draft.
// On recognition or parse failure the pipeline returns to Idle with a
// transient message and the error is returned to the caller as well.
func (p *Pipeline) StartCapture(ctx context.Context, imageBytes []byte) (Snapshot, error) {
	token := uuid.NewString()
	ctx = services.WithCaptureToken(ctx, token)

	p.mu.Lock()
	p.phase = PhaseProcessing
	p.token = token
	p.draft = nil
	p.hit = nil
	p.enrichment = EnrichmentNone
	p.message = ""
	p.publishLocked(EventStateChanged)
	p.mu.Unlock()

	p.logger.Info("capture started", logging.Args(logging.ContextFields(ctx)...)...)

	raw, err := p.recognizer.Recognize(ctx, imageBytes)
	if err != nil {
		return p.failCapture(ctx, token, err), err
	}

	draft, err := extraction.Parse(raw)
	if err != nil {
		return p.failCapture(ctx, token, err), err
	}

	p.mu.Lock()
	if p.token != token {
		// A newer capture replaced this one while recognition ran.
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, nil
	}
	p.phase = PhaseReady
	p.draft = &draft
	p.enrichment = EnrichmentPending
	p.publishLocked(EventStateChanged)
	snap := p.snapshotLocked()
	p.mu.Unlock()

	// Enrichment outlives the capture request: in the daemon the incoming
	// request context is canceled as soon as the handler returns, which
	// would abort the catalog lookup mid-flight. Strip cancellation but
	// keep the context values, the capture token among them.
	p.wg.Add(1)
	go p.enrich(context.WithoutCancel(ctx), token, draft)

	return snap, nil
}

func (p *Pipeline) failCapture(ctx context.Context, token string, err error) Snapshot {
	p.logger.Warn("capture failed",
		logging.Args(append(logging.ContextFields(ctx), logging.Error(err))...)...,
	)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != token {
		return p.snapshotLocked()
	}
	p.phase = PhaseIdle
	p.draft = nil
	p.hit = nil
	p.enrichment = EnrichmentNone
	p.message = services.UserMessage(err)
	p.publishLocked(EventStateChanged)
	return p.snapshotLocked()
}

// enrich runs the catalog lookup and applies the result unless the capture
// has been replaced or dismissed in the meantime.
func (p *Pipeline) enrich(ctx context.Context, token string, draft cards.Card) {
	defer p.wg.Done()

	result := p.resolver.Resolve(ctx, draft)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != token || p.phase != PhaseReady || p.draft == nil {
		p.logger.Debug("stale enrichment dropped", logging.String(logging.FieldCaptureToken, token))
		return
	}
	if result.Found() {
		hit := *result.Hit
		p.hit = &hit
		p.enrichment = EnrichmentFound
		if hit.SetName != "" {
			p.draft.SetName = hit.SetName
		}
		if hit.CardmarketID > 0 {
			p.draft.CardmarketID = hit.CardmarketID
		}
	} else {
		p.enrichment = EnrichmentNotFound
	}
	p.publishLocked(EventStateChanged)
}

// Confirm finalizes and persists the current draft. On persistence failure
// the draft stays intact in Ready so the user can retry; on success the
// pipeline returns to Idle and a history change is broadcast.
func (p *Pipeline) Confirm(ctx context.Context, ov reconcile.Overrides) (cards.Card, error) {
	p.mu.Lock()
	if p.phase != PhaseReady || p.draft == nil {
		p.mu.Unlock()
		return cards.Card{}, services.Wrap(services.ErrNotFound, "pipeline", "confirm", "no capture awaiting confirmation", nil)
	}
	draft := *p.draft
	token := p.token
	p.mu.Unlock()

	saved, err := p.gate.FinalizeNew(services.WithCaptureToken(ctx, token), draft, ov)
	if err != nil {
		p.mu.Lock()
		if p.token == token {
			p.message = services.UserMessage(err)
			p.publishLocked(EventStateChanged)
		}
		p.mu.Unlock()
		return cards.Card{}, err
	}

	p.mu.Lock()
	if p.token == token {
		p.phase = PhaseIdle
		p.token = ""
		p.draft = nil
		p.hit = nil
		p.enrichment = EnrichmentNone
		p.message = ""
		p.publishLocked(EventStateChanged)
	}
	p.publishLocked(EventHistoryChanged)
	p.mu.Unlock()

	return saved, nil
}

// Dismiss discards the current capture and returns to Idle.
func (p *Pipeline) Dismiss() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = PhaseIdle
	p.token = ""
	p.draft = nil
	p.hit = nil
	p.enrichment = EnrichmentNone
	p.message = ""
	p.publishLocked(EventStateChanged)
	return p.snapshotLocked()
}

// AcknowledgeMessage clears the transient message once it has been shown.
func (p *Pipeline) AcknowledgeMessage() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = ""
	p.publishLocked(EventStateChanged)
	return p.snapshotLocked()
}

// NotifyHistoryChanged broadcasts a history change performed outside the
// capture flow, such as an edit or delete through the API.
func (p *Pipeline) NotifyHistoryChanged() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publishLocked(EventHistoryChanged)
}

// Wait blocks until in-flight enrichment goroutines finish. Used by tests
// and shutdown.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}
