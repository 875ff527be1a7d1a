// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdiddy/citeguard/pkg/types"
)

// SearchResult is a source matched by a full-text query. Rank is the FTS5
// bm25 rank; lower is more relevant.
type SearchResult struct {
	Source
	Rank float64 `json:"rank" yaml:"rank"`
}

// ListSources returns stored sources in insertion order. A limit of zero
// returns all of them.
func (s *Store) ListSources(ctx context.Context, limit int) ([]Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources s ORDER BY s.rowid`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// SearchSources runs an FTS5 query over source titles and content, ranked
// by relevance. When FTS5 is not compiled in, query is matched as a
// case-insensitive substring instead. maxResults of zero uses the store
// default.
func (s *Store) SearchSources(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		rows *sql.Rows
		err  error
	)
	if s.fts {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+sourceColumns+`, sources_fts.rank
			FROM sources_fts
			JOIN sources s ON s.rowid = sources_fts.rowid
			WHERE sources_fts MATCH ?
			ORDER BY sources_fts.rank
			LIMIT ?`, query, maxResults)
	} else {
		pattern := "%" + query + "%"
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+sourceColumns+`, 0 AS rank
			FROM sources s
			WHERE s.title LIKE ? OR s.content LIKE ?
			ORDER BY s.rowid
			LIMIT ?`, pattern, pattern, maxResults)
	}
	if err != nil {
		return nil, fmt.Errorf("searching library: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var rank float64
		src, err := scanSource(rows, &rank)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, SearchResult{Source: src, Rank: rank})
	}
	return results, rows.Err()
}

// RecordAnalysis appends a similarity result to the analysis history and
// returns the stored record.
func (s *Store) RecordAnalysis(ctx context.Context, documentTitle string, result types.SimilarityResult) (types.AnalysisRecord, error) {
	recs, err := json.Marshal(result.Recommendations)
	if err != nil {
		return types.AnalysisRecord{}, fmt.Errorf("marshaling recommendations: %w", err)
	}
	at := s.now().UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (document_title, score, flagged_count, total_matches,
			sources_checked, strategy, recommendations, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		documentTitle, result.Score, result.FlaggedCount, result.TotalMatches,
		result.SourcesChecked, string(result.Strategy), string(recs), at.Format(time.RFC3339))
	if err != nil {
		return types.AnalysisRecord{}, fmt.Errorf("recording analysis: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.AnalysisRecord{}, fmt.Errorf("recording analysis: %w", err)
	}
	return types.AnalysisRecord{
		ID:            id,
		DocumentTitle: documentTitle,
		Result:        result,
		AnalyzedAt:    at,
	}, nil
}

// ListAnalyses returns the most recent analyses first. A limit of zero
// uses the store default.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]types.AnalysisRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_title, score, flagged_count, total_matches,
			sources_checked, strategy, recommendations, analyzed_at
		FROM analyses ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var records []types.AnalysisRecord
	for rows.Next() {
		var (
			rec      types.AnalysisRecord
			title    sql.NullString
			strategy string
			recsJSON sql.NullString
			at       string
		)
		if err := rows.Scan(&rec.ID, &title, &rec.Result.Score, &rec.Result.FlaggedCount,
			&rec.Result.TotalMatches, &rec.Result.SourcesChecked, &strategy, &recsJSON, &at); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rec.DocumentTitle = title.String
		rec.Result.Strategy = types.Strategy(strategy)
		if recsJSON.Valid && recsJSON.String != "" {
			if err := json.Unmarshal([]byte(recsJSON.String), &rec.Result.Recommendations); err != nil {
				return nil, fmt.Errorf("decoding recommendations of analysis %d: %w", rec.ID, err)
			}
		}
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("parsing analyzed_at of analysis %d: %w", rec.ID, err)
		}
		rec.AnalyzedAt = t
		records = append(records, rec)
	}
	return records, rows.Err()
}
