package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/countdown/internal/storage/results"
)

// ResultRepository persists finished games in the results table.
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository creates a ResultRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save inserts r. Saving the same game twice is a no-op.
func (r *ResultRepository) Save(ctx context.Context, res results.Result) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO results (id, played_at, target, numbers, expression, distance, scored)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		res.ID, res.PlayedAt, res.Target, toInt32s(res.Numbers), res.Expression, res.Distance, res.Scored,
	)
	if err != nil {
		return fmt.Errorf("saving result %s: %w", res.ID, err)
	}
	return nil
}

// Recent returns up to limit results, newest first.
//
// Postcondition: Returns ErrInvalidLimit for limit < 1.
func (r *ResultRepository) Recent(ctx context.Context, limit int) ([]results.Result, error) {
	if err := results.CheckLimit(limit); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, played_at, target, numbers, expression, distance, scored
		 FROM results
		 ORDER BY played_at DESC, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent results: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (results.Result, error) {
		var (
			res     results.Result
			numbers []int32
		)
		if err := row.Scan(&res.ID, &res.PlayedAt, &res.Target, &numbers, &res.Expression, &res.Distance, &res.Scored); err != nil {
			return results.Result{}, err
		}
		res.PlayedAt = res.PlayedAt.UTC()
		res.Numbers = fromInt32s(numbers)
		return res, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning recent results: %w", err)
	}
	return out, nil
}

func toInt32s(values []int) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v)
	}
	return out
}

func fromInt32s(values []int32) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}
