package phrasebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the phrasebook keys
const DefaultRedisPrefix = "lenslate:phrasebook"

// RedisStore keeps documents in a hash and their ids in a sorted set
// scored by creation time
type RedisStore struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to the Redis server at url and pings it
func OpenRedis(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) dataKey() string  { return s.prefix + ":data" }
func (s *RedisStore) indexKey() string { return s.prefix + ":index" }

// Put inserts or replaces an entry
func (s *RedisStore) Put(ctx context.Context, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode phrasebook entry: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.dataKey(), doc.ID, encoded)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: idScore(doc.ID), Member: doc.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store phrasebook entry %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns the entry with the given id
func (s *RedisStore) Get(ctx context.Context, id string) (*Document, error) {
	raw, err := s.client.HGet(ctx, s.dataKey(), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read phrasebook entry %s: %w", id, err)
	}
	return decodeDocument(raw)
}

// Remove deletes the entry with the given id
func (s *RedisStore) Remove(ctx context.Context, id string) error {
	var deleted *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.HDel(ctx, s.dataKey(), id)
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove phrasebook entry %s: %w", id, err)
	}
	if deleted.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all entries this version can read, newest first
func (s *RedisStore) List(ctx context.Context) ([]*Document, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list phrasebook: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	values, err := s.client.HMGet(ctx, s.dataKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read phrasebook entries: %w", err)
	}

	docs := make([]*Document, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // index entry without data
		}
		doc, err := decodeDocument(raw)
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func decodeDocument(raw string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode phrasebook entry: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func idScore(id string) float64 {
	t, err := time.Parse(time.RFC3339Nano, id)
	if err != nil {
		return 0
	}
	return float64(t.UnixMilli())
}
