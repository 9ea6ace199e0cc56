// Package company executes the hybrid ranked query and its matching count query
// against Postgres (pgvector, pg_trgm, full-text search).
package company

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/launchdex/launchdex/internal/domain/company"
	"github.com/launchdex/launchdex/internal/domain/search/filters"
	"github.com/launchdex/launchdex/internal/domain/search/result"
	"github.com/launchdex/launchdex/internal/domain/search/tier"
	"github.com/launchdex/launchdex/internal/scoring"
	"github.com/launchdex/launchdex/internal/vocab"
)

// Repo runs company search queries. The signal weights are fixed at construction:
// one weight set per deployment, never per request.
type Repo struct {
	db       *sql.DB
	efSearch int
	weights  scoring.Weights
}

// New creates a company repository. efSearch tunes the per-session HNSW search
// quality knob applied before every ranked query; zero leaves the server default.
func New(db *sql.DB, efSearch int, weights scoring.Weights) *Repo {
	return &Repo{db: db, efSearch: efSearch, weights: weights}
}

// Search executes the ranked, filtered, paginated query. It runs inside a read-only
// transaction so SET LOCAL hnsw.ef_search scopes to exactly this query.
func (r *Repo) Search(
	ctx context.Context, rawQuery, cleanedQuery string,
	f filters.ParsedFilters, embedding []float32, limit, offset int,
) ([]result.Result, error) {
	q := Query{
		RawQuery:     rawQuery,
		CleanedQuery: cleanedQuery,
		Filters:      f,
		Embedding:    embedding,
		Weights:      r.weights,
		Limit:        limit,
		Offset:       offset,
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin search tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if r.efSearch > 0 {
		// SET does not accept bind parameters; efSearch comes from config, not
		// caller input.
		stmt := "SET LOCAL hnsw.ef_search = " + strconv.Itoa(r.efSearch)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("set ef_search: %w", err)
		}
	}

	query, args := buildSearchSQL(q)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ranked query: %w", err)
	}
	defer rows.Close()

	results, err := scanResults(rows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit search tx: %w", err)
	}
	return results, nil
}

// Count executes the matching count query: identical predicates and inclusion gate,
// no ordering or pagination, so the total can never diverge from the page contents.
func (r *Repo) Count(
	ctx context.Context, rawQuery, cleanedQuery string,
	f filters.ParsedFilters, embedding []float32,
) (int, error) {
	q := Query{
		RawQuery:     rawQuery,
		CleanedQuery: cleanedQuery,
		Filters:      f,
		Embedding:    embedding,
		Weights:      r.weights,
	}
	query, args := buildCountSQL(q)

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	return count, nil
}

// FieldValues loads the distinct categorical values used to seed the vocabulary
// index at startup.
func (r *Repo) FieldValues(ctx context.Context) (vocab.Lists, error) {
	var lists vocab.Lists
	var err error

	if lists.Batches, err = r.distinct(ctx, "SELECT DISTINCT batch FROM companies WHERE batch <> '' ORDER BY batch"); err != nil {
		return vocab.Lists{}, err
	}
	if lists.Stages, err = r.distinct(ctx, "SELECT DISTINCT stage FROM companies WHERE stage <> '' ORDER BY stage"); err != nil {
		return vocab.Lists{}, err
	}
	if lists.Statuses, err = r.distinct(ctx, "SELECT DISTINCT status FROM companies WHERE status <> '' ORDER BY status"); err != nil {
		return vocab.Lists{}, err
	}
	if lists.Regions, err = r.distinct(ctx, "SELECT DISTINCT unnest(regions) AS region FROM companies ORDER BY region"); err != nil {
		return vocab.Lists{}, err
	}

	return lists, nil
}

// Ping verifies database reachability for health checks.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping companies db: %w", err)
	}
	return nil
}

func (r *Repo) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct values: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan distinct value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distinct values: %w", err)
	}
	return values, nil
}

// scanResults builds domain results from scored rows. The tier is re-derived in Go
// from the same thresholds the SQL boost ladder uses, keeping one source of truth
// for classification.
func scanResults(rows *sql.Rows) ([]result.Result, error) {
	var results []result.Result

	for rows.Next() {
		var (
			c           company.Company
			oneLiner    sql.NullString
			website     sql.NullString
			batch       sql.NullString
			stage       sql.NullString
			status      sql.NullString
			teamSize    sql.NullInt64
			foundedAt   sql.NullTime
			location    sql.NullString
			exactPrefix bool
			res         result.Result
		)

		err := rows.Scan(
			&c.ID, &c.Name, &oneLiner, &website, &batch, &stage, &status, &teamSize,
			&foundedAt, &c.IsHiring, &c.IsNonprofit, &location,
			pq.Array(&c.Tags), pq.Array(&c.Industries), pq.Array(&c.Regions),
			&res.SemanticScore, &res.NameScore, &res.TextScore, &exactPrefix,
			&res.FinalScore,
		)
		if err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}

		c.OneLiner = oneLiner.String
		c.Website = website.String
		c.Batch = batch.String
		c.Stage = stage.String
		c.Status = status.String
		c.TeamSize = int(teamSize.Int64)
		c.FoundedAt = foundedAt.Time
		c.Location = location.String

		t := scoring.Classify(res.SemanticScore, res.NameScore, exactPrefix)
		meta := tier.Lookup(t)
		res.Company = c
		res.Tier = t
		res.TierLabel = meta.Label
		res.TierOrder = meta.Order

		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result rows: %w", err)
	}
	return results, nil
}
