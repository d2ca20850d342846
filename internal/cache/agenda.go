package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const agendaTTL = 60 * time.Second

// AgendaCache keeps a professional's booked slots for one day, so the
// availability endpoint does not hammer the store on every poll. A nil
// cache is a valid no-op (tests, redis disabled).
type AgendaCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewAgendaCache(rdb *redis.Client, log *zap.Logger) *AgendaCache {
	if rdb == nil {
		return nil
	}
	return &AgendaCache{rdb: rdb, log: log.Named("cache.agenda")}
}

func dayKey(professionalID uint, day time.Time) string {
	return fmt.Sprintf("agenda:%d:%s", professionalID, day.Format("2006-01-02"))
}

func (c *AgendaCache) GetDay(
	ctx context.Context,
	professionalID uint,
	day time.Time,
) ([]time.Time, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, dayKey(professionalID, day)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []time.Time
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *AgendaCache) SetDay(
	ctx context.Context,
	professionalID uint,
	day time.Time,
	slots []time.Time,
) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, dayKey(professionalID, day), raw, agendaTTL).Err(); err != nil {
		c.log.Debug("agenda cache set failed", zap.Error(err))
	}
}

// InvalidateDay drops the cached agenda after any write touching the
// professional's schedule for that day.
func (c *AgendaCache) InvalidateDay(
	ctx context.Context,
	professionalID uint,
	day time.Time,
) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, dayKey(professionalID, day)).Err(); err != nil {
		c.log.Debug("agenda cache invalidate failed", zap.Error(err))
	}
}
