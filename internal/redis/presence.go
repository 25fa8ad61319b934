package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// PresenceStatus is the mirrored view of a participant's connection
// state. The in-process registry stays authoritative for delivery
// decisions; this store exists for last-seen queries and ops
// visibility and is written best-effort.
type PresenceStatus struct {
	ParticipantID string    `json:"participant_id"`
	IsOnline      bool      `json:"is_online"`
	LastSeen      time.Time `json:"last_seen"`
	SessionID     string    `json:"session_id,omitempty"`
}

// PresenceStore mirrors registry state into Redis.
type PresenceStore struct {
	client *goredis.Client
	ttl    time.Duration
}

const (
	presenceKeyPrefix = "presence:"       // per-participant status
	presenceOnlineSet = "presence:online" // set of online participant ids
)

func NewPresenceStore(client *goredis.Client, ttl time.Duration) *PresenceStore {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &PresenceStore{client: client, ttl: ttl}
}

// SetOnline records a participant registration.
func (p *PresenceStore) SetOnline(ctx context.Context, participantID, sessionID string) error {
	status := PresenceStatus{
		ParticipantID: participantID,
		IsOnline:      true,
		LastSeen:      time.Now(),
		SessionID:     sessionID,
	}

	pipe := p.client.Pipeline()
	data, _ := json.Marshal(status)
	pipe.Set(ctx, presenceKeyPrefix+participantID, data, p.ttl)
	pipe.SAdd(ctx, presenceOnlineSet, participantID)
	_, err := pipe.Exec(ctx)
	return err
}

// SetOffline records a participant disconnect. The status row is kept
// around longer than the online TTL so last-seen stays queryable.
func (p *PresenceStore) SetOffline(ctx context.Context, participantID string) error {
	status := PresenceStatus{
		ParticipantID: participantID,
		IsOnline:      false,
		LastSeen:      time.Now(),
	}

	pipe := p.client.Pipeline()
	data, _ := json.Marshal(status)
	pipe.Set(ctx, presenceKeyPrefix+participantID, data, 24*time.Hour)
	pipe.SRem(ctx, presenceOnlineSet, participantID)
	_, err := pipe.Exec(ctx)
	return err
}

// GetStatus returns the mirrored status, or nil on a miss.
func (p *PresenceStore) GetStatus(ctx context.Context, participantID string) (*PresenceStatus, error) {
	data, err := p.client.Get(ctx, presenceKeyPrefix+participantID).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var status PresenceStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// OnlineCount returns the size of the mirrored online set.
func (p *PresenceStore) OnlineCount(ctx context.Context) (int64, error) {
	return p.client.SCard(ctx, presenceOnlineSet).Result()
}
