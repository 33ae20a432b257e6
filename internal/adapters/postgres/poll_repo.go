package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/favour-22/alx-polly/internal/domain"
)

type PollRepository struct {
	db *pgxpool.Pool
}

func NewPollRepository(db *pgxpool.Pool) domain.PollRepository {
	return &PollRepository{db: db}
}

func (r *PollRepository) List(ctx context.Context, opts domain.PollListOptions) ([]*domain.Poll, int64, error) {
	baseQuery := `
		SELECT
			p.id,
			p.owner_id,
			p.question,
			p.is_closed,
			p.ends_at,
			p.created_at,
			p.updated_at
		FROM polls p
	`

	args := []any{}
	conditions := []string{}
	argCounter := 1

	conditions = append(conditions, "p.deleted_at IS NULL")

	if opts.Search != "" {
		conditions = append(conditions, fmt.Sprintf("p.question ILIKE $%d", argCounter))
		args = append(args, "%"+opts.Search+"%")
		argCounter++
	}

	if opts.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("p.owner_id = $%d", argCounter))
		args = append(args, *opts.OwnerID)
		argCounter++
	}

	baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	baseQuery += " ORDER BY p.created_at DESC"

	var total int64
	if opts.IsPaginate {
		countQuery := "SELECT COUNT(*) FROM polls p WHERE " + strings.Join(conditions, " AND ")
		if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count polls: %w", err)
		}

		offset := (opts.Page - 1) * opts.Limit
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, opts.Limit, offset)
	} else {
		baseQuery += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	var polls []*domain.Poll
	for rows.Next() {
		var p domain.Poll

		if err := rows.Scan(
			&p.ID,
			&p.OwnerID,
			&p.Question,
			&p.IsClosed,
			&p.EndsAt,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan polls: %w", err)
		}

		polls = append(polls, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return polls, total, nil
}

func (r *PollRepository) GetByID(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT
			p.id,
			p.owner_id,
			p.question,
			p.is_closed,
			p.ends_at,
			p.created_at,
			p.updated_at
		FROM polls p
		WHERE p.id = $1 AND p.deleted_at IS NULL
	`

	var poll domain.Poll
	if err := r.db.QueryRow(ctx, query, pollID).Scan(
		&poll.ID,
		&poll.OwnerID,
		&poll.Question,
		&poll.IsClosed,
		&poll.EndsAt,
		&poll.CreatedAt,
		&poll.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, err
	}

	options, err := r.optionsFor(ctx, pollID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return &poll, nil
}

func (r *PollRepository) optionsFor(ctx context.Context, pollID uuid.UUID) ([]domain.PollOption, error) {
	query := `
		SELECT id, poll_id, label, position
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.Query(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll options: %w", err)
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Label, &opt.Position); err != nil {
			return nil, fmt.Errorf("failed to scan poll options: %w", err)
		}
		options = append(options, opt)
	}

	return options, rows.Err()
}

func (r *PollRepository) Create(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	poll.CreatedAt = now
	poll.UpdatedAt = now

	pollQuery := `
		INSERT INTO polls (id, owner_id, question, is_closed, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := tx.Exec(ctx, pollQuery,
		poll.ID,
		poll.OwnerID,
		poll.Question,
		poll.IsClosed,
		poll.EndsAt,
		poll.CreatedAt,
		poll.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	optionQuery := `
		INSERT INTO poll_options (id, poll_id, label, position)
		VALUES ($1, $2, $3, $4)
	`

	for _, opt := range poll.Options {
		if _, err := tx.Exec(ctx, optionQuery, opt.ID, opt.PollID, opt.Label, opt.Position); err != nil {
			return fmt.Errorf("failed to insert poll option: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PollRepository) Delete(ctx context.Context, pollID uuid.UUID) error {
	query := `UPDATE polls SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), pollID)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrPollNotFound
	}

	return nil
}

func (r *PollRepository) CloseExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
		UPDATE polls
		SET is_closed = TRUE, updated_at = $1
		WHERE is_closed = FALSE
			AND deleted_at IS NULL
			AND ends_at IS NOT NULL
			AND ends_at <= $1
		RETURNING id
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to close expired polls: %w", err)
	}
	defer rows.Close()

	var closed []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan closed poll id: %w", err)
		}
		closed = append(closed, id)
	}

	return closed, rows.Err()
}
