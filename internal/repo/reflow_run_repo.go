package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Reflow/internal/domain"
)

// ReflowRunRepo — репозиторий истории пересчётов.
//
// Таблица reflow_runs — журнал только на запись: пересчёт никогда не
// читает прошлые записи, они нужны для истории и аудита.
type ReflowRunRepo struct {
	pool *pgxpool.Pool
}

// NewReflowRunRepo создаёт новый ReflowRunRepo.
func NewReflowRunRepo(pool *pgxpool.Pool) *ReflowRunRepo {
	return &ReflowRunRepo{pool: pool}
}

// Create сохраняет запись пересчёта.
func (r *ReflowRunRepo) Create(ctx context.Context, run *domain.ReflowRun) error {
	var resultJSON []byte
	if run.Result != nil {
		var err error
		resultJSON, err = json.Marshal(run.Result)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
	}

	query := `
		INSERT INTO reflow_runs (id, status, document_count, work_order_count,
		                         change_count, result, error, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		run.ID,
		run.Status,
		run.DocumentCount,
		run.WorkOrderCount,
		run.ChangeCount,
		resultJSON,
		nullString(run.Error),
		run.Duration.Milliseconds(),
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reflow run: %w", err)
	}
	return nil
}

// GetByID возвращает запись пересчёта по ID.
func (r *ReflowRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReflowRun, error) {
	query := `
		SELECT id, status, document_count, work_order_count, change_count,
		       result, error, duration_ms, created_at
		FROM reflow_runs
		WHERE id = $1
	`
	run, err := scanRun(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

// List возвращает записи пересчётов, новые первыми.
// status фильтрует по статусу; пустая строка — без фильтра.
func (r *ReflowRunRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.ReflowRun, error) {
	query := `
		SELECT id, status, document_count, work_order_count, change_count,
		       result, error, duration_ms, created_at
		FROM reflow_runs
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, nullString(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reflow runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ReflowRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// scanRun сканирует одну строку в ReflowRun.
func scanRun(row pgx.Row) (*domain.ReflowRun, error) {
	var run domain.ReflowRun
	var resultJSON []byte
	var runError *string
	var durationMS int64

	err := row.Scan(
		&run.ID,
		&run.Status,
		&run.DocumentCount,
		&run.WorkOrderCount,
		&run.ChangeCount,
		&resultJSON,
		&runError,
		&durationMS,
		&run.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan reflow run: %w", err)
	}

	if resultJSON != nil {
		if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	if runError != nil {
		run.Error = *runError
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond

	return &run, nil
}

// nullString возвращает nil для пустой строки (для NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
