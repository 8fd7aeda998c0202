package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

type connGetter interface {
	GetContext(ctx context.Context) (redis.Conn, error)
}

// SessionRepository keeps conversation history as one redis list per user.
// Redis key expiry does the eviction.
type SessionRepository struct {
	pool        connGetter
	ttl         time.Duration
	maxMessages int
	logger      *zap.SugaredLogger
}

type messageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func NewSessionRepository(pool connGetter, ttl time.Duration, maxMessages int, logger *zap.SugaredLogger) *SessionRepository {
	return &SessionRepository{
		pool:        pool,
		ttl:         ttl,
		maxMessages: maxMessages,
		logger:      logger,
	}
}

func (r *SessionRepository) History(ctx context.Context, userID string) ([]model.Message, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	raw, err := redis.ByteSlices(conn.Do("LRANGE", sessionKey(userID), 0, -1))
	if err != nil {
		if err == redis.ErrNil {
			return nil, nil
		}
		return nil, fmt.Errorf("LRANGE: %w", err)
	}

	res := make([]model.Message, 0, len(raw))
	for _, b := range raw {
		var dto messageDTO
		if err := json.Unmarshal(b, &dto); err != nil {
			r.logger.Warnw("skipping malformed session message", "user_id", userID, "err", err)
			continue
		}
		res = append(res, model.Message{Role: model.Role(dto.Role), Content: dto.Content})
	}

	return res, nil
}

func (r *SessionRepository) Append(ctx context.Context, userID string, msgs ...model.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	args := redis.Args{}.Add(sessionKey(userID))
	for _, m := range msgs {
		b, err := json.Marshal(messageDTO{Role: string(m.Role), Content: m.Content})
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		args = args.Add(b)
	}

	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	key := sessionKey(userID)
	if err := conn.Send("MULTI"); err != nil {
		return err
	}
	if err := conn.Send("RPUSH", args...); err != nil {
		return err
	}
	if r.maxMessages > 0 {
		if err := conn.Send("LTRIM", key, -r.maxMessages, -1); err != nil {
			return err
		}
	}
	if r.ttl > 0 {
		if err := conn.Send("EXPIRE", key, int64(r.ttl/time.Second)); err != nil {
			return err
		}
	}

	if _, err := conn.Do("EXEC"); err != nil {
		return fmt.Errorf("EXEC: %w", err)
	}

	return nil
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}
