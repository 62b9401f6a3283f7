package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

var ErrMatchNotFound = fmt.Errorf("match %w", apperror.ErrNotFound)

type MatchResultRepository interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
	ListByPlayer(ctx context.Context, playerID string, limit int64) ([]*entity.MatchResult, error)
}

type dbMatchResult struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchResultRepository stores results under match:<id>; ttl 0 keeps them forever.
func NewMatchResultRepository(client *redis.Client, ttl time.Duration) MatchResultRepository {
	return &dbMatchResult{
		client: client,
		ttl:    ttl,
	}
}

func matchKey(id string) string {
	return "match:" + id
}

func playerMatchesKey(playerID string) string {
	return "player:" + playerID + ":matches"
}

func (that *dbMatchResult) Save(ctx context.Context, result *entity.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal match result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKey(result.ID), resultJSON, that.ttl)
		pipe.LPush(ctx, playerMatchesKey(result.WinnerID), result.ID)
		pipe.LPush(ctx, playerMatchesKey(result.LoserID), result.ID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}

	return nil
}

func (that *dbMatchResult) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	response, err := that.client.Get(ctx, matchKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var result entity.MatchResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match result: %w", err)
	}

	return &result, nil
}

// ListByPlayer returns the player's most recent matches first; expired entries are skipped.
func (that *dbMatchResult) ListByPlayer(ctx context.Context, playerID string, limit int64) ([]*entity.MatchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.LRange(ctx, playerMatchesKey(playerID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, matchKey(id))
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	results := make([]*entity.MatchResult, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var result entity.MatchResult
		if err = json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match result: %w", err)
		}

		results = append(results, &result)
	}

	return results, nil
}
