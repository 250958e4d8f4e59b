package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cardscan/internal/cards"
)

const cardColumns = "id, name, language, collector_number, set_code, set_name, year_of_print, cardmarket_id, foil, signed, condition, created_at, updated_at"

func scanCard(scanner interface{ Scan(dest ...any) error }) (*cards.Card, error) {
	var (
		card       cards.Card
		foil       int64
		signed     int64
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&card.ID,
		&card.Name,
		&card.Language,
		&card.CollectorNumber,
		&card.SetCode,
		&card.SetName,
		&card.YearOfPrint,
		&card.CardmarketID,
		&foil,
		&signed,
		&card.Condition,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	card.Foil = foil != 0
	card.Signed = signed != 0
	card.CreatedAt = parseTimestamp(createdRaw)
	card.UpdatedAt = parseTimestamp(updatedRaw)
	return &card, nil
}

func parseTimestamp(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// Upsert inserts the card when its ID is zero and updates the existing row
// otherwise. It returns the persisted record with timestamps and the
// assigned identifier filled in.
func (s *Store) Upsert(ctx context.Context, card cards.Card) (*cards.Card, error) {
	ctx = ensureContext(ctx)
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	if card.ID == 0 {
		res, err := s.execWithRetry(
			ctx,
			`INSERT INTO cards (
                name, language, collector_number, set_code, set_name,
                year_of_print, cardmarket_id, foil, signed, condition,
                created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			card.Name,
			card.Language,
			card.CollectorNumber,
			card.SetCode,
			card.SetName,
			card.YearOfPrint,
			card.CardmarketID,
			boolToInt(card.Foil),
			boolToInt(card.Signed),
			card.Condition,
			timestamp,
			timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("insert card: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
		return s.GetByID(ctx, id)
	}

	res, err := s.execWithRetry(
		ctx,
		`UPDATE cards
         SET name = ?, language = ?, collector_number = ?, set_code = ?,
             set_name = ?, year_of_print = ?, cardmarket_id = ?, foil = ?,
             signed = ?, condition = ?, updated_at = ?
         WHERE id = ?`,
		card.Name,
		card.Language,
		card.CollectorNumber,
		card.SetCode,
		card.SetName,
		card.YearOfPrint,
		card.CardmarketID,
		boolToInt(card.Foil),
		boolToInt(card.Signed),
		card.Condition,
		timestamp,
		card.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("update card: no row with id %d", card.ID)
	}
	return s.GetByID(ctx, card.ID)
}

// GetByID fetches a card by identifier. A missing row yields (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*cards.Card, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

// FindByCollectorNumber returns the first card matching a collector number.
func (s *Store) FindByCollectorNumber(ctx context.Context, collectorNumber string) (*cards.Card, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+cardColumns+` FROM cards WHERE collector_number = ? ORDER BY id LIMIT 1`,
		collectorNumber,
	)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by collector number: %w", err)
	}
	return card, nil
}

// List returns all cards, most recent first.
func (s *Store) List(ctx context.Context) ([]*cards.Card, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var result []*cards.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, card)
	}
	return result, rows.Err()
}

// DeleteByID removes a single card. Deleting a missing id is not an error.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	if err := s.execWithoutResultRetry(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

// Clear removes every card from history.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.execWithoutResultRetry(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Count returns the number of stored cards.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM cards`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return count, nil
}
