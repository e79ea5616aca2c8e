package screeninginfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/screening"
)

// PostgresRunRepository archives completed screening runs. Results, manifest
// and summary are stored as JSONB snapshots.
type PostgresRunRepository struct {
	db *sqlx.DB
}

func NewPostgresRunRepository(db *sqlx.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

type runRow struct {
	ID             string    `db:"id"`
	Provider       string    `db:"provider"`
	Model          string    `db:"model"`
	JobDescription string    `db:"job_description"`
	Results        []byte    `db:"results"`
	Manifest       []byte    `db:"manifest"`
	Summary        []byte    `db:"summary"`
	CreatedAt      time.Time `db:"created_at"`
}

func (row *runRow) ToDomain() (*screening.Run, error) {
	run := &screening.Run{
		ID:             kernel.NewRunID(row.ID),
		Provider:       screening.ProviderKind(row.Provider),
		Model:          row.Model,
		JobDescription: row.JobDescription,
		CreatedAt:      row.CreatedAt,
	}
	if err := json.Unmarshal(row.Results, &run.Results); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.Manifest, &run.Manifest); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.Summary, &run.Summary); err != nil {
		return nil, err
	}
	return run, nil
}

// Create inserts a run snapshot.
func (r *PostgresRunRepository) Create(ctx context.Context, run *screening.Run) error {
	query := `
		INSERT INTO screening_runs (
			id, provider, model, job_description,
			results, manifest, summary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	results, err := json.Marshal(run.Results)
	if err != nil {
		return screening.ErrRunSaveFailed(err)
	}
	manifest, err := json.Marshal(run.Manifest)
	if err != nil {
		return screening.ErrRunSaveFailed(err)
	}
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return screening.ErrRunSaveFailed(err)
	}

	_, err = r.db.ExecContext(ctx, query,
		run.ID, string(run.Provider), run.Model, run.JobDescription,
		results, manifest, summary, run.CreatedAt,
	)
	if err != nil {
		return screening.ErrRunSaveFailed(err)
	}
	return nil
}

// GetByID fetches one archived run.
func (r *PostgresRunRepository) GetByID(ctx context.Context, id kernel.RunID) (*screening.Run, error) {
	query := `
		SELECT id, provider, model, job_description,
		       results, manifest, summary, created_at
		FROM screening_runs
		WHERE id = $1`

	row := &runRow{}
	if err := r.db.GetContext(ctx, row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, screening.ErrRunNotFound(id.String())
		}
		return nil, screening.ErrRegistry.NewWithCause(screening.CodeRunQueryFailed, err).
			WithDetail("run_id", id.String()).
			WithDetail("operation", "get")
	}

	run, err := row.ToDomain()
	if err != nil {
		return nil, screening.ErrRegistry.NewWithCause(screening.CodeRunQueryFailed, err).
			WithDetail("run_id", id.String()).
			WithDetail("operation", "decode")
	}
	return run, nil
}

// List pages through archived runs, newest first.
func (r *PostgresRunRepository) List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[screening.Run], error) {
	opts = opts.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM screening_runs`); err != nil {
		return nil, screening.ErrRegistry.NewWithCause(screening.CodeRunQueryFailed, err).
			WithDetail("operation", "count")
	}

	query := `
		SELECT id, provider, model, job_description,
		       results, manifest, summary, created_at
		FROM screening_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows := []runRow{}
	if err := r.db.SelectContext(ctx, &rows, query, opts.PageSize, opts.Offset()); err != nil {
		return nil, screening.ErrRegistry.NewWithCause(screening.CodeRunQueryFailed, err).
			WithDetail("operation", "list").
			WithDetails(map[string]any{
				"page":      opts.Page,
				"page_size": opts.PageSize,
			})
	}

	runs := make([]screening.Run, len(rows))
	for i := range rows {
		run, err := rows[i].ToDomain()
		if err != nil {
			return nil, screening.ErrRegistry.NewWithCause(screening.CodeRunQueryFailed, err).
				WithDetail("operation", "decode").
				WithDetail("row_index", i)
		}
		runs[i] = *run
	}

	return kernel.NewPaginated(runs, opts, total), nil
}
