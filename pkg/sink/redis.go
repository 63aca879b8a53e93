package sink

import (
	"context"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
)

// DefaultRedisPrefix namespaces workspace keys.
const DefaultRedisPrefix = "archmodel:workspace:"

// RedisClient is the subset of *redis.Client used by [RedisSink].
type RedisClient interface {
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// RedisConfig configures [NewRedisClient].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects lazily; the first command dials.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisSink stores each workspace as JSON under {prefix}{id} and its digest
// under {prefix}{id}:digest.
//
// Both keys are written in one MULTI/EXEC transaction: either the new
// snapshot and its digest are stored, or neither is.
type RedisSink struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

// NewRedisSink returns a sink writing through client. An empty prefix means
// [DefaultRedisPrefix]; a zero ttl keeps keys forever.
func NewRedisSink(client RedisClient, prefix string, ttl time.Duration) *RedisSink {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisSink{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisSink) Name() string { return "redis" }

// Key returns the key holding a workspace's JSON.
func (s *RedisSink) Key(workspaceID string) string {
	return s.prefix + workspaceID
}

func (s *RedisSink) Put(ctx context.Context, workspaceID string, _ export.Credentials, doc *export.Document) error {
	data, err := export.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "encode workspace")
	}
	key := s.Key(workspaceID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, s.ttl)
		pipe.Set(ctx, key+":digest", export.Digest(data), s.ttl)
		return nil
	})
	if err != nil {
		return storeError(ctx, err, "redis write %s", key)
	}
	return nil
}

// storeError maps a storage client failure to a sink error code.
func storeError(ctx context.Context, err error, format string, args ...any) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrCodeTimeout, err, format, args...)
	}
	if _, ok := err.(net.Error); ok {
		return errors.Wrap(errors.ErrCodeNetwork, err, format, args...)
	}
	return errors.Wrap(errors.ErrCodeSink, err, format, args...)
}
