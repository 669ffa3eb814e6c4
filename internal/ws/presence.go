package ws

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Presence mirrors the socket registry into Redis so other instances can
// see who is online and receive published events.
//
// Keys:
//   - <prefix>:conn:<userID>      set of socket ids
//   - <prefix>:presence:<userID>  "online" / "offline"
type Presence struct {
	client *redis.Client
	prefix string
}

func NewPresence(client *redis.Client, prefix string) *Presence {
	return &Presence{client: client, prefix: prefix}
}

func (p *Presence) connKey(userID string) string {
	return fmt.Sprintf("%s:conn:%s", p.prefix, userID)
}

func (p *Presence) presenceKey(userID string) string {
	return fmt.Sprintf("%s:presence:%s", p.prefix, userID)
}

func (p *Presence) Online(ctx context.Context, userID, socketID string) error {
	if err := p.client.SAdd(ctx, p.connKey(userID), socketID).Err(); err != nil {
		return err
	}
	return p.client.Set(ctx, p.presenceKey(userID), "online", 24*time.Hour).Err()
}

func (p *Presence) Offline(ctx context.Context, userID, socketID string) error {
	if err := p.client.SRem(ctx, p.connKey(userID), socketID).Err(); err != nil {
		return err
	}
	cnt, err := p.client.SCard(ctx, p.connKey(userID)).Result()
	if err != nil {
		return err
	}
	if cnt == 0 {
		return p.client.Set(ctx, p.presenceKey(userID), "offline", 24*time.Hour).Err()
	}
	return nil
}

// Publish forwards an emitted frame to other instances.
func (p *Presence) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}
