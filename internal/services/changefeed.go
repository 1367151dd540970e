package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
)

const (
	ticketChannel  = "tickets:changes"
	ticketCacheKey = "tickets:list"
)

// TicketEvent is one change-feed message. Consumers treat it as an
// invalidation signal, not a delta: any event triggers a full refetch.
type TicketEvent struct {
	TicketID string `json:"ticket_id"`
	Action   string `json:"action"` // created, payment, updated
}

// ChangeFeed publishes ticket changes over Redis pub/sub and keeps the cached
// ticket list coherent. All methods are no-ops when Redis is unavailable.
type ChangeFeed struct {
	redis *redis.Client
}

func NewChangeFeed(redisClient *redis.Client) *ChangeFeed {
	return &ChangeFeed{redis: redisClient}
}

// Publish broadcasts the event and drops the cached list. Publish failures
// are logged and swallowed: the feed is an eventual-consistency read path,
// never part of the write transaction.
func (f *ChangeFeed) Publish(ctx context.Context, event TicketEvent) {
	if f.redis == nil {
		return
	}

	f.redis.Del(ctx, ticketCacheKey)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[FEED] Failed to marshal event: %v", err)
		return
	}
	if err := f.redis.Publish(ctx, ticketChannel, data).Err(); err != nil {
		log.Printf("[FEED] Publish failed: %v", err)
	}
}

// Watch invalidates the cached ticket list whenever any subscriber-visible
// change arrives, including changes made by other server instances. Blocks
// until ctx is done.
func (f *ChangeFeed) Watch(ctx context.Context) {
	if f.redis == nil {
		return
	}

	sub := f.redis.Subscribe(ctx, ticketChannel)
	defer sub.Close()

	log.Printf("[FEED] Watching %s", ticketChannel)
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event TicketEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[FEED] Bad event payload: %v", err)
				continue
			}
			f.redis.Del(ctx, ticketCacheKey)
		}
	}
}
