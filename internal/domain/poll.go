package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found")
	ErrPollClosed     = errors.New("poll is closed")
	ErrAlreadyVoted   = errors.New("already voted on this poll")
	ErrNotPollOwner   = errors.New("not the poll owner")
)

type Poll struct {
	ID        uuid.UUID    `json:"id"`
	OwnerID   uuid.UUID    `json:"owner_id"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options,omitempty"`
	IsClosed  bool         `json:"is_closed"`
	EndsAt    *time.Time   `json:"ends_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type PollOption struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	Label     string    `json:"label"`
	Position  int       `json:"position"`
	VoteCount int64     `json:"vote_count"`
}

type PollSaveRequest struct {
	Question string     `json:"question" validate:"required,min=3,max=255"`
	Options  []string   `json:"options" validate:"required,min=2,max=10,dive,required,max=100"`
	EndsAt   *time.Time `json:"ends_at" validate:"omitempty"`
}

type PollListOptions struct {
	OwnerID    *uuid.UUID
	Search     string
	Page       int
	Limit      int
	IsPaginate bool
}

type PollResults struct {
	PollID     uuid.UUID    `json:"poll_id"`
	Options    []PollOption `json:"options"`
	TotalVotes int64        `json:"total_votes"`
}

type PollRepository interface {
	List(ctx context.Context, opts PollListOptions) ([]*Poll, int64, error)
	GetByID(ctx context.Context, pollID uuid.UUID) (*Poll, error)
	Create(ctx context.Context, poll *Poll) error
	Delete(ctx context.Context, pollID uuid.UUID) error
	CloseExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type PollService interface {
	List(ctx context.Context, opts PollListOptions) ([]*Poll, int64, error)
	Get(ctx context.Context, pollID uuid.UUID) (*Poll, error)
	Create(ctx context.Context, req PollSaveRequest, ownerID uuid.UUID) (*Poll, error)
	Delete(ctx context.Context, pollID, requesterID uuid.UUID) error
	Vote(ctx context.Context, pollID, optionID, voterID uuid.UUID) (*PollResults, error)
	Results(ctx context.Context, pollID uuid.UUID) (*PollResults, error)
	Activity(ctx context.Context, pollID uuid.UUID, limit int64) ([]Vote, error)
	CloseExpired(ctx context.Context) ([]uuid.UUID, error)
}
