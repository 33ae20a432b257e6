// Package redis
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/favour-22/alx-polly/internal/domain"
)

const (
	tallyTTL          = time.Hour
	activityMaxLen    = 100
	primedMarkerField = "_primed"
)

type VoteTally struct {
	redis *redis.Client
}

func NewVoteTally(r *redis.Client) domain.VoteTally {
	return &VoteTally{redis: r}
}

func tallyKey(pollID uuid.UUID) string {
	return "poll:" + pollID.String() + ":tally"
}

func activityKey(pollID uuid.UUID) string {
	return "poll:" + pollID.String() + ":activity"
}

func (t *VoteTally) Increment(ctx context.Context, pollID, optionID uuid.UUID) error {
	key := tallyKey(pollID)

	// Only bump warm tallies. A cold key is left for the next read to
	// prime from the vote store, otherwise a lone HINCRBY would create
	// a hash with a single option's count.
	exists, err := t.redis.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("tally exists failed: %w", err)
	}
	if exists == 0 {
		return nil
	}

	if err := t.redis.HIncrBy(ctx, key, optionID.String(), 1).Err(); err != nil {
		return fmt.Errorf("tally hincrby failed: %w", err)
	}

	return nil
}

func (t *VoteTally) Get(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, bool, error) {
	fields, err := t.redis.HGetAll(ctx, tallyKey(pollID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("tally hgetall failed: %w", err)
	}

	if len(fields) == 0 {
		return nil, false, nil
	}

	counts := make(map[uuid.UUID]int64, len(fields))
	for field, raw := range fields {
		if field == primedMarkerField {
			continue
		}

		optionID, err := uuid.Parse(field)
		if err != nil {
			return nil, false, fmt.Errorf("tally has invalid option id %q: %w", field, err)
		}

		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("tally has invalid count %q: %w", raw, err)
		}

		counts[optionID] = count
	}

	return counts, true, nil
}

func (t *VoteTally) Prime(ctx context.Context, pollID uuid.UUID, counts map[uuid.UUID]int64) error {
	key := tallyKey(pollID)

	values := make(map[string]any, len(counts)+1)
	values[primedMarkerField] = 1
	for optionID, count := range counts {
		values[optionID.String()] = count
	}

	pipe := t.redis.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, values)
	pipe.Expire(ctx, key, tallyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("tally prime failed: %w", err)
	}

	return nil
}

func (t *VoteTally) Invalidate(ctx context.Context, pollID uuid.UUID) error {
	if err := t.redis.Del(ctx, tallyKey(pollID), activityKey(pollID)).Err(); err != nil {
		return fmt.Errorf("tally del failed: %w", err)
	}

	return nil
}

func (t *VoteTally) RecordActivity(ctx context.Context, vote *domain.Vote) error {
	data, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("activity marshal failed: %w", err)
	}

	if err := t.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: activityKey(vote.PollID),
		Values: map[string]any{
			"data": data,
		},
		MaxLen: activityMaxLen,
		Approx: true,
	}).Err(); err != nil {
		return fmt.Errorf("activity xadd failed: %w", err)
	}

	return nil
}

func (t *VoteTally) RecentActivity(ctx context.Context, pollID uuid.UUID, limit int64) ([]domain.Vote, error) {
	msgs, err := t.redis.XRevRangeN(ctx, activityKey(pollID), "+", "-", limit).Result()
	if err != nil {
		return nil, fmt.Errorf("activity xrevrange failed: %w", err)
	}

	votes := make([]domain.Vote, 0, len(msgs))
	for _, msg := range msgs {
		raw, ok := msg.Values["data"].(string)
		if !ok {
			continue
		}

		var vote domain.Vote
		if err := json.Unmarshal([]byte(raw), &vote); err != nil {
			return nil, fmt.Errorf("activity unmarshal failed: %w", err)
		}

		votes = append(votes, vote)
	}

	return votes, nil
}
