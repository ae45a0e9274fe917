package genres

import (
	"context"
	"database/sql"
	"fmt"

	"dramahub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ListMirror returns the full local mirror, name-sorted for display.
func (r *Repo) ListMirror(ctx context.Context) ([]models.Genre, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, tmdb_id, name
		FROM genres
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var out []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.TMDBID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ReplaceMirror swaps the whole mirror for the given set in one transaction.
// Genre taxonomies are small and change rarely, so replacement beats
// per-row reconciliation.
func (r *Repo) ReplaceMirror(ctx context.Context, set []models.Genre) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace genres: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM genres`); err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO genres (tmdb_id, name) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare genre insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range set {
		if _, err := stmt.ExecContext(ctx, g.TMDBID, g.Name); err != nil {
			return fmt.Errorf("insert genre tmdb=%d: %w", g.TMDBID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace genres: %w", err)
	}
	return nil
}
