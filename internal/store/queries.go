package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/textstat/internal/analyzer"
)

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// wrapQueryErr maps "no such table" failures to ErrNotInitialized so callers
// can tell an empty history apart from a broken one.
func wrapQueryErr(msg string, err error) error {
	if err != nil && strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%s: %w", msg, ErrNotInitialized)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Analysis operations

// SaveAnalysis records a report and its word frequencies in one transaction
// and returns the new analysis ID.
func (s *Store) SaveAnalysis(source string, r analyzer.Report) (int64, error) {
	return s.SaveAnalysisAt(source, r, time.Now())
}

// SaveAnalysisAt is SaveAnalysis with an explicit creation time.
func (s *Store) SaveAnalysisAt(source string, r analyzer.Report, createdAt time.Time) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO analyses
		(source, created_at, words, chars, chars_no_spaces, sentences, unique_words)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		source,
		createdAt.UTC().Format(timeLayout),
		r.Words,
		r.Chars,
		r.CharsNoSpaces,
		r.Sentences,
		r.UniqueWords(),
	)
	if err != nil {
		return 0, wrapQueryErr(fmt.Sprintf("failed to insert analysis for %s", source), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get analysis id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO word_frequencies (analysis_id, word, count) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare frequency insert: %w", err)
	}
	defer stmt.Close()

	for word, count := range r.Frequency {
		if _, err := stmt.Exec(id, word, count); err != nil {
			return 0, fmt.Errorf("failed to insert frequency for %q: %w", word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit analysis: %w", err)
	}

	return id, nil
}

// GetAnalysis retrieves a saved analysis by ID.
func (s *Store) GetAnalysis(id int64) (*Analysis, error) {
	query := `
		SELECT id, source, created_at, words, chars, chars_no_spaces, sentences, unique_words
		FROM analyses
		WHERE id = ?
	`

	a, err := scanAnalysis(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, wrapQueryErr(fmt.Sprintf("failed to get analysis %d", id), err)
	}

	return a, nil
}

// ListAnalyses returns saved analyses, newest first. A non-positive limit
// returns all of them.
func (s *Store) ListAnalyses(limit int) ([]*Analysis, error) {
	query := `
		SELECT id, source, created_at, words, chars, chars_no_spaces, sentences, unique_words
		FROM analyses
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapQueryErr("failed to list analyses", err)
	}
	defer rows.Close()

	var analyses []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}

	return analyses, nil
}

// ListAnalysesBySource returns saved analyses for one source, newest first.
func (s *Store) ListAnalysesBySource(source string) ([]*Analysis, error) {
	query := `
		SELECT id, source, created_at, words, chars, chars_no_spaces, sentences, unique_words
		FROM analyses
		WHERE source = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.Query(query, source)
	if err != nil {
		return nil, wrapQueryErr(fmt.Sprintf("failed to list analyses for %s", source), err)
	}
	defer rows.Close()

	var analyses []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}

	return analyses, nil
}

// DeleteAnalysis removes an analysis and its frequencies.
func (s *Store) DeleteAnalysis(id int64) error {
	result, err := s.db.Exec(`DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return wrapQueryErr(fmt.Sprintf("failed to delete analysis %d", id), err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("analysis %d: %w", id, ErrNotFound)
	}

	return nil
}

// Frequency operations

// GetFrequencies returns the word frequencies saved with an analysis.
func (s *Store) GetFrequencies(id int64) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT word, count FROM word_frequencies WHERE analysis_id = ?`, id)
	if err != nil {
		return nil, wrapQueryErr(fmt.Sprintf("failed to get frequencies for analysis %d", id), err)
	}
	defer rows.Close()

	freq := make(map[string]int)
	for rows.Next() {
		var word string
		var count int
		if err := rows.Scan(&word, &count); err != nil {
			return nil, fmt.Errorf("failed to scan frequency row: %w", err)
		}
		freq[word] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating frequencies: %w", err)
	}

	return freq, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*Analysis, error) {
	var a Analysis
	var createdAt string

	err := row.Scan(
		&a.ID,
		&a.Source,
		&createdAt,
		&a.Words,
		&a.Chars,
		&a.CharsNoSpaces,
		&a.Sentences,
		&a.UniqueWords,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for analysis %d: %w", a.ID, err)
	}

	return &a, nil
}
