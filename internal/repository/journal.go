package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

var ErrInvalidLimit = errors.New("history limit must be positive")

type JournalRepository interface {
	Append(ctx context.Context, event *entity.BoardEvent) error
	Recent(ctx context.Context, limit int64) ([]*entity.BoardEvent, error)
	Clear(ctx context.Context) error
}

// dbJournal keeps the newest events at the head of a capped redis list.
type dbJournal struct {
	client *redis.Client
	key    string
	limit  int64
}

func NewJournalRepository(client *redis.Client, key string, limit int64) JournalRepository {
	return &dbJournal{
		client: client,
		key:    key,
		limit:  limit,
	}
}

func (that *dbJournal) Append(ctx context.Context, event *entity.BoardEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal board event: %w", err)
	}

	pipe := that.client.TxPipeline()
	pipe.LPush(ctx, that.key, eventJSON)
	pipe.LTrim(ctx, that.key, 0, that.limit-1)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append board event: %w", err)
	}

	return nil
}

func (that *dbJournal) Recent(ctx context.Context, limit int64) ([]*entity.BoardEvent, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	response, err := that.client.LRange(ctx, that.key, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read board events: %w", err)
	}

	events := make([]*entity.BoardEvent, 0, len(response))
	for _, raw := range response {
		var event entity.BoardEvent
		if err = json.Unmarshal([]byte(raw), &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board event: %w", err)
		}

		events = append(events, &event)
	}

	return events, nil
}

func (that *dbJournal) Clear(ctx context.Context) error {
	if err := that.client.Del(ctx, that.key).Err(); err != nil {
		return fmt.Errorf("failed to clear board events: %w", err)
	}

	return nil
}
