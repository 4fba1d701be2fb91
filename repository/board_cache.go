package repository

import (
	"context"
	"errors"
	"time"

	"aidea-server/models"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// BoardCache wraps a board repository with a Redis read-through cache.
// Redis faults are logged and never fail the call.
//
// Every save bumps a per-user generation counter. A read-through store only
// lands if the counter is unchanged since before the backend read, so a
// board read before a concurrent save is never cached after it.
type BoardCache struct {
	base   BoardRepositoryInterface
	redis  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewBoardCache(base BoardRepositoryInterface, client *redis.Client, ttl time.Duration, logger *log.Logger) *BoardCache {
	if base == nil {
		panic("repository.NewBoardCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardCache{base: base, redis: client, ttl: ttl, logger: logger}
}

func (c *BoardCache) FindBoard(ctx context.Context, userID string) (models.Board, error) {
	if board, ok := c.load(ctx, userID); ok {
		return board, nil
	}

	gen, cacheable := c.generation(ctx, userID)
	board, err := c.base.FindBoard(ctx, userID)
	if err != nil {
		return models.Board{}, err
	}

	if cacheable {
		c.store(ctx, userID, board, gen)
	}
	return board, nil
}

func (c *BoardCache) SaveBoard(ctx context.Context, userID string, board models.Board) error {
	if err := c.base.SaveBoard(ctx, userID, board); err != nil {
		return err
	}
	c.evict(ctx, userID)
	return nil
}

func (c *BoardCache) load(ctx context.Context, userID string) (models.Board, bool) {
	if c.redis == nil {
		return models.Board{}, false
	}
	data, err := c.redis.Get(ctx, boardCacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).WithField("user", userID).Warn("board cache read failed")
		}
		return models.Board{}, false
	}
	var board models.Board
	if err := sonic.Unmarshal(data, &board); err != nil {
		_ = c.redis.Del(ctx, boardCacheKey(userID)).Err()
		return models.Board{}, false
	}
	return board, true
}

// generation reports the user's current save counter and whether a
// read-through store may be attempted at all.
func (c *BoardCache) generation(ctx context.Context, userID string) (int64, bool) {
	if c.redis == nil || c.ttl == 0 {
		return 0, false
	}
	gen, err := c.redis.Get(ctx, boardGenerationKey(userID)).Int64()
	switch {
	case err == redis.Nil:
		return 0, true
	case err != nil:
		c.logger.WithError(err).WithField("user", userID).Warn("board cache generation read failed")
		return 0, false
	}
	return gen, true
}

func (c *BoardCache) store(ctx context.Context, userID string, board models.Board, gen int64) {
	data, err := sonic.Marshal(board)
	if err != nil {
		return
	}
	genKey := boardGenerationKey(userID)
	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != gen {
			return errStaleBoard
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, boardCacheKey(userID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleBoard), errors.Is(err, redis.TxFailedErr):
		c.logger.WithField("user", userID).Debug("board changed during read, not caching")
	default:
		c.logger.WithError(err).WithField("user", userID).Warn("board cache write failed")
	}
}

func (c *BoardCache) evict(ctx context.Context, userID string) {
	if c.redis == nil {
		return
	}
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, boardGenerationKey(userID))
		pipe.Del(ctx, boardCacheKey(userID))
		return nil
	})
	if err != nil {
		c.logger.WithError(err).WithField("user", userID).Warn("board cache evict failed")
	}
}

var errStaleBoard = errors.New("board changed during read")

func boardCacheKey(userID string) string {
	return "board:" + userID
}

func boardGenerationKey(userID string) string {
	return "boardgen:" + userID
}
