package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/favour-22/alx-polly/internal/domain"
)

const uniqueViolation = "23505"

type VoteRepository struct {
	db *pgxpool.Pool
}

func NewVoteRepository(db *pgxpool.Pool) domain.VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Cast(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, poll_id, option_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	vote.CreatedAt = time.Now().UTC()

	if _, err := r.db.Exec(ctx, query,
		vote.ID,
		vote.PollID,
		vote.OptionID,
		vote.VoterID,
		vote.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	return nil
}

func (r *VoteRepository) CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT option_id, COUNT(*)
		FROM votes
		WHERE poll_id = $1
		GROUP BY option_id
	`

	rows, err := r.db.Query(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var optionID uuid.UUID
		var count int64
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote counts: %w", err)
		}
		counts[optionID] = count
	}

	return counts, rows.Err()
}
