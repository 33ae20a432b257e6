// Package poll
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/favour-22/alx-polly/internal/domain"
	"github.com/favour-22/alx-polly/internal/logger"
)

// Publisher is satisfied by the in-process event bus.
type Publisher interface {
	Publish(event any)
}

type service struct {
	polls domain.PollRepository
	votes domain.VoteRepository
	tally domain.VoteTally
	bus   Publisher
	log   logger.Logger
}

func NewService(
	polls domain.PollRepository,
	votes domain.VoteRepository,
	tally domain.VoteTally,
	bus Publisher,
	log logger.Logger,
) domain.PollService {
	return &service{
		polls: polls,
		votes: votes,
		tally: tally,
		bus:   bus,
		log:   log,
	}
}

func (s *service) List(ctx context.Context, opts domain.PollListOptions) ([]*domain.Poll, int64, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	return s.polls.List(ctx, opts)
}

func (s *service) Get(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error) {
	return s.polls.GetByID(ctx, pollID)
}

func (s *service) Create(ctx context.Context, req domain.PollSaveRequest, ownerID uuid.UUID) (*domain.Poll, error) {
	poll := &domain.Poll{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Question: req.Question,
		EndsAt:   req.EndsAt,
	}

	for i, label := range req.Options {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:       uuid.New(),
			PollID:   poll.ID,
			Label:    label,
			Position: i,
		})
	}

	if err := s.polls.Create(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	return poll, nil
}

func (s *service) Delete(ctx context.Context, pollID, requesterID uuid.UUID) error {
	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return err
	}

	if poll.OwnerID != requesterID {
		return domain.ErrNotPollOwner
	}

	if err := s.polls.Delete(ctx, pollID); err != nil {
		return err
	}

	if err := s.tally.Invalidate(ctx, pollID); err != nil {
		s.log.Warn("poll: failed to invalidate tally after delete", "poll_id", pollID, "error", err)
	}

	return nil
}

func (s *service) Vote(ctx context.Context, pollID, optionID, voterID uuid.UUID) (*domain.PollResults, error) {
	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if poll.IsClosed || (poll.EndsAt != nil && poll.EndsAt.Before(time.Now())) {
		return nil, domain.ErrPollClosed
	}

	var valid bool
	for _, opt := range poll.Options {
		if opt.ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, domain.ErrOptionNotFound
	}

	vote := &domain.Vote{
		ID:       uuid.New(),
		PollID:   pollID,
		OptionID: optionID,
		VoterID:  voterID,
	}

	if err := s.votes.Cast(ctx, vote); err != nil {
		return nil, err
	}

	if err := s.tally.Increment(ctx, pollID, optionID); err != nil {
		// Counter drifted from the source of truth, drop it so the
		// next read re-primes from postgres.
		s.log.Warn("poll: tally increment failed", "poll_id", pollID, "error", err)
		if err := s.tally.Invalidate(ctx, pollID); err != nil {
			s.log.Warn("poll: tally invalidate failed", "poll_id", pollID, "error", err)
		}
	}

	if err := s.tally.RecordActivity(ctx, vote); err != nil {
		s.log.Debug("poll: activity record failed", "poll_id", pollID, "error", err)
	}

	results, err := s.resultsFor(ctx, poll)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(domain.VoteCastEvent{PollID: pollID, Results: results})

	return results, nil
}

func (s *service) Results(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, error) {
	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	return s.resultsFor(ctx, poll)
}

func (s *service) Activity(ctx context.Context, pollID uuid.UUID, limit int64) ([]domain.Vote, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if _, err := s.polls.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	return s.tally.RecentActivity(ctx, pollID, limit)
}

func (s *service) CloseExpired(ctx context.Context) ([]uuid.UUID, error) {
	closed, err := s.polls.CloseExpired(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to close expired polls: %w", err)
	}

	for _, pollID := range closed {
		s.bus.Publish(domain.PollClosedEvent{PollID: pollID})
	}

	return closed, nil
}

func (s *service) resultsFor(ctx context.Context, poll *domain.Poll) (*domain.PollResults, error) {
	counts, found, err := s.tally.Get(ctx, poll.ID)
	if err != nil || !found {
		if err != nil {
			s.log.Warn("poll: tally read failed, falling back to postgres", "poll_id", poll.ID, "error", err)
		}

		counts, err = s.votes.CountByOption(ctx, poll.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count votes: %w", err)
		}

		if err := s.tally.Prime(ctx, poll.ID, counts); err != nil {
			s.log.Debug("poll: tally prime failed", "poll_id", poll.ID, "error", err)
		}
	}

	results := &domain.PollResults{PollID: poll.ID}
	for _, opt := range poll.Options {
		opt.VoteCount = counts[opt.ID]
		results.TotalVotes += opt.VoteCount
		results.Options = append(results.Options, opt)
	}

	return results, nil
}
