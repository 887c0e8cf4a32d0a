package storage

import (
	"errors"
	"fmt"

	"github.com/gomodule/redigo/redis"
)

const DefaultRedisPrefix = "mailslurper"

// RedisStore keeps values as plain Redis strings under a key prefix.
type RedisStore struct {
	pool   *redis.Pool
	prefix string
}

func NewRedisStore(pool *redis.Pool, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{pool: pool, prefix: prefix}
}

// NewRedisPool dials url lazily for every new pooled connection.
func NewRedisPool(url string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:   8,
		MaxActive: 64,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(url)
		},
	}
}

func (r *RedisStore) prefixedKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisStore) Get(key string) (string, bool, error) {
	conn := r.pool.Get()
	defer conn.Close()

	v, err := redis.String(conn.Do("GET", r.prefixedKey(key)))
	if errors.Is(err, redis.ErrNil) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStore) Set(key, value string) error {
	conn := r.pool.Get()
	defer conn.Close()

	res, err := redis.String(conn.Do("SET", r.prefixedKey(key), value))
	if err != nil {
		return err
	}

	if res != "OK" {
		return fmt.Errorf("failed to set key: %v", res)
	}

	return nil
}

func (r *RedisStore) Delete(key string) error {
	conn := r.pool.Get()
	defer conn.Close()

	n, err := redis.Int(conn.Do("DEL", r.prefixedKey(key)))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrKeyNotFound
	}
	return nil
}
