package store

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "nim:values"

// Redis keeps a value table in a single Redis hash, field per pile.
type Redis struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

func NewRedis(addr, key string) *Redis {
	if key == "" {
		key = defaultRedisKey
	}
	return &Redis{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		key:     key,
		timeout: 5 * time.Second,
	}
}

func (r *Redis) Load() (map[int]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "hgetall %s", r.key)
	}
	values := make(map[int]float64, len(fields))
	for field, raw := range fields {
		state, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid field %q", field)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value for field %q", field)
		}
		values[state] = v
	}
	return values, nil
}

// Save replaces the hash atomically.
func (r *Redis) Save(values map[int]float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	fields := make(map[string]any, len(values))
	for state, v := range values {
		fields[strconv.Itoa(state)] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, r.key, fields)
		}
		return nil
	})
	return errors.Wrapf(err, "replace %s", r.key)
}

func (r *Redis) Close() error {
	return r.client.Close()
}
