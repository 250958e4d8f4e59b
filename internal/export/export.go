// Package export writes card history to the CSV layout the companion
// collection tools expect.
//
// The format is deliberately quote-free: commas inside a field value are
// replaced with a space before joining, so every line always has exactly
// eight columns. encoding/csv would quote instead, which the downstream
// importers do not handle, so the rows are assembled by hand.
package export

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"cardscan/internal/cards"
	"cardscan/internal/logging"
	"cardscan/internal/services"
)

// Header is the fixed CSV first line.
const Header = "Name,Language,Collector Number,Set Code,Year of Print,Foil,Signed,Condition"

// Lister is the history surface the exporter reads from.
type Lister interface {
	List(ctx context.Context) ([]*cards.Card, error)
}

// Exporter serializes history to a CSV file.
type Exporter struct {
	store  Lister
	logger *slog.Logger
}

// New builds an exporter. A nil logger is replaced with a no-op.
func New(store Lister, logger *slog.Logger) *Exporter {
	return &Exporter{
		store:  store,
		logger: logging.NewComponentLogger(logger, "export"),
	}
}

// WriteFile renders the full history to path. The destination is guarded by
// an advisory lock so a daemon export and a CLI export cannot interleave
// writes; a held lock fails the export immediately instead of waiting. It
// returns the number of records written.
func (e *Exporter) WriteFile(ctx context.Context, path string) (int, error) {
	records, err := e.store.List(ctx)
	if err != nil {
		return 0, services.Wrap(nil, "export", "write file", "list history", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, services.Wrap(services.ErrExportWrite, "export", "write file", "create export directory", err)
		}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return 0, services.Wrap(services.ErrExportWrite, "export", "write file", "acquire export lock", err)
	}
	if !locked {
		return 0, services.Wrap(services.ErrExportWrite, "export", "write file", "export already in progress", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	data := Render(records)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return 0, services.Wrap(services.ErrExportWrite, "export", "write file", "write csv", err)
	}

	e.logger.Info("history exported",
		logging.String("path", path),
		logging.Int("records", len(records)),
	)
	return len(records), nil
}

// Render produces the CSV document for the given records: one header line
// plus one line per record, each terminated by a newline.
func Render(records []*cards.Card) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, card := range records {
		if card == nil {
			continue
		}
		b.WriteString(renderRow(*card))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderRow(card cards.Card) string {
	fields := []string{
		sanitize(card.Name),
		sanitize(card.Language),
		sanitize(card.CollectorNumber),
		sanitize(card.SetCode),
		strconv.Itoa(card.YearOfPrint),
		strconv.FormatBool(card.Foil),
		strconv.FormatBool(card.Signed),
		sanitize(card.Condition),
	}
	return strings.Join(fields, ",")
}

// sanitize keeps the column count stable without quoting.
func sanitize(value string) string {
	return strings.ReplaceAll(value, ",", " ")
}
