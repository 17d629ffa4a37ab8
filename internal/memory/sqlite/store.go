package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arunavtnt-prog/jarvis/internal/memory"
)

// InsertMany bulk-inserts facts in a single transaction and returns the
// inserted count. No duplicate detection is performed: re-running an
// ingestion on the same input grows the store. Callers wanting a fresh
// start must recreate the database file.
func (s *Store) InsertMany(ctx context.Context, facts []memory.Fact) (int, error) {
	if len(facts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO facts (type, content, source_reference, timestamp, raw_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, fact := range facts {
		createdAt := fact.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		if _, err := stmt.ExecContext(ctx,
			fact.Type, fact.Content, fact.SourceRef, fact.Timestamp, fact.RawText,
			createdAt.Format(time.RFC3339Nano),
		); err != nil {
			return 0, fmt.Errorf("sqlite: insert fact %q: %w", fact.SourceRef, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit insert: %w", err)
	}

	s.logger.Debug("facts inserted", "count", len(facts))

	return len(facts), nil
}

// LoadAll returns every fact ordered by id ascending.
func (s *Store) LoadAll(ctx context.Context) ([]memory.Fact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, content, source_reference, timestamp, raw_text, created_at
		FROM facts
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load facts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanFacts(rows)
}

// Stats returns the total fact count and the per-type breakdown ordered
// by count descending.
func (s *Store) Stats(ctx context.Context) (memory.Stats, error) {
	var stats memory.Stats

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM facts").Scan(&stats.Total); err != nil {
		return memory.Stats{}, fmt.Errorf("sqlite: count facts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COUNT(*) AS n
		FROM facts
		GROUP BY type
		ORDER BY n DESC, type ASC`)
	if err != nil {
		return memory.Stats{}, fmt.Errorf("sqlite: count by type: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var tc memory.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return memory.Stats{}, fmt.Errorf("sqlite: scan type count: %w", err)
		}
		stats.ByType = append(stats.ByType, tc)
	}
	if err := rows.Err(); err != nil {
		return memory.Stats{}, fmt.Errorf("sqlite: scan type counts: %w", err)
	}

	return stats, nil
}

func scanFacts(rows *sql.Rows) ([]memory.Fact, error) {
	var facts []memory.Fact
	for rows.Next() {
		var (
			fact         memory.Fact
			createdAtStr string
		)

		if err := rows.Scan(&fact.ID, &fact.Type, &fact.Content, &fact.SourceRef,
			&fact.Timestamp, &fact.RawText, &createdAtStr); err != nil {
			return nil, fmt.Errorf("sqlite: scan fact: %w", err)
		}

		if createdAtStr != "" {
			t, err := time.Parse(time.RFC3339Nano, createdAtStr)
			if err != nil {
				return nil, fmt.Errorf("sqlite: parse created_at %q: %w", createdAtStr, err)
			}
			fact.CreatedAt = t
		}

		facts = append(facts, fact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: scan facts rows: %w", err)
	}

	return facts, nil
}
