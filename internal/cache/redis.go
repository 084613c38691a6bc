package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"shipdash-backend/internal/config"
	"shipdash-backend/internal/models"
)

// Snapshot cache keys
const summaryKey = "analytics:summary"

var (
	client      *redis.Client
	snapshotTTL = time.Minute
)

// Init initializes the Redis connection. Redis is optional: when it is
// unreachable every lookup misses and each request fetches fresh from
// the upstream API.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if cfg.Redis.TTLSeconds > 0 {
		snapshotTTL = time.Duration(cfg.Redis.TTLSeconds) * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when degraded)
func GetClient() *redis.Client {
	return client
}

// Healthy reports whether the cache is connected.
func Healthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}

// snapshotKey hashes the upstream list query so each distinct fetch
// caches under its own key.
func snapshotKey(queryFingerprint string) string {
	h := sha256.Sum256([]byte(queryFingerprint))
	return "shipments:snapshot:" + hex.EncodeToString(h[:])[:32]
}

// GetSnapshot returns a cached shipment snapshot for the query
// fingerprint, if one is present.
func GetSnapshot(ctx context.Context, fingerprint string) ([]models.Shipment, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, snapshotKey(fingerprint)).Bytes()
	if err != nil {
		return nil, false
	}
	var records []models.Shipment
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

// PutSnapshot caches a fetched snapshot under the query fingerprint.
func PutSnapshot(ctx context.Context, fingerprint string, records []models.Shipment) {
	if client == nil {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	client.Set(ctx, snapshotKey(fingerprint), data, snapshotTTL)
}

// InvalidateSnapshots drops every cached shipment snapshot. Called
// after a create or update goes through upstream so the next listing
// reflects it.
func InvalidateSnapshots(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "shipments:snapshot:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// GetSummary returns the cached analytics summary bytes if present.
func GetSummary(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// PutSummary caches the analytics summary payload.
func PutSummary(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, summaryKey, data, snapshotTTL)
}
