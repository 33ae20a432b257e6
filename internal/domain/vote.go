package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	OptionID  uuid.UUID `json:"option_id"`
	VoterID   uuid.UUID `json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteRequest struct {
	OptionID uuid.UUID `json:"option_id" validate:"required"`
}

type VoteRepository interface {
	Cast(ctx context.Context, vote *Vote) error
	CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
}

// VoteTally is the hot-path counter store. Counts are primed from the
// vote repository on a miss and kept in sync on every cast.
type VoteTally interface {
	Increment(ctx context.Context, pollID, optionID uuid.UUID) error
	Get(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, bool, error)
	Prime(ctx context.Context, pollID uuid.UUID, counts map[uuid.UUID]int64) error
	Invalidate(ctx context.Context, pollID uuid.UUID) error
	RecordActivity(ctx context.Context, vote *Vote) error
	RecentActivity(ctx context.Context, pollID uuid.UUID, limit int64) ([]Vote, error)
}
