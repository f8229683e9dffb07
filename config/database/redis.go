package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/meetnear/broadcast-service/pkg/cache"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
	"github.com/meetnear/broadcast-service/pkg/logger"
)

// RedisInstance redis read & write pool instance
type RedisInstance struct {
	readPool, writePool *redis.Pool
	cache               interfaces.Cache
}

// ReadPool method
func (m *RedisInstance) ReadPool() *redis.Pool {
	return m.readPool
}

// WritePool method
func (m *RedisInstance) WritePool() *redis.Pool {
	return m.writePool
}

// Cache method
func (m *RedisInstance) Cache() interfaces.Cache {
	return m.cache
}

// Health method
func (m *RedisInstance) Health() map[string]error {
	mErr := make(map[string]error)

	pingRead := m.readPool.Get()
	defer pingRead.Close()
	_, err := pingRead.Do("PING")
	mErr["redis_read"] = err

	pingWrite := m.writePool.Get()
	defer pingWrite.Close()
	_, err = pingWrite.Do("PING")
	mErr["redis_write"] = err

	return mErr
}

// Disconnect method
func (m *RedisInstance) Disconnect(ctx context.Context) (err error) {
	defer logger.LogWithDefer("\x1b[33;5mredis\x1b[0m: disconnect...")()

	if err := m.readPool.Close(); err != nil {
		return err
	}
	return m.writePool.Close()
}

// InitRedis return redis pool instance from environment:
// REDIS_READ_HOST, REDIS_READ_PORT, REDIS_READ_AUTH, REDIS_READ_TLS,
// REDIS_WRITE_HOST, REDIS_WRITE_PORT, REDIS_WRITE_AUTH, REDIS_WRITE_TLS
func InitRedis() interfaces.RedisPool {
	defer logger.LogWithDefer("Load Redis connection...")()

	inst := &RedisInstance{
		readPool:  ConnectRedis("READ"),
		writePool: ConnectRedis("WRITE"),
	}
	inst.cache = cache.NewRedisCache(inst.readPool, inst.writePool)
	return inst
}

// ConnectRedis connect to redis with environment prefix (READ or WRITE)
func ConnectRedis(prefix string) *redis.Pool {
	host := os.Getenv(fmt.Sprintf("REDIS_%s_HOST", prefix))
	port := os.Getenv(fmt.Sprintf("REDIS_%s_PORT", prefix))
	auth := os.Getenv(fmt.Sprintf("REDIS_%s_AUTH", prefix))
	useTLS, _ := strconv.ParseBool(os.Getenv(fmt.Sprintf("REDIS_%s_TLS", prefix)))

	pool := &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 4 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", fmt.Sprintf("%s:%s", host, port), redis.DialPassword(auth), redis.DialUseTLS(useTLS))
		},
	}

	ping := pool.Get()
	defer ping.Close()
	if _, err := ping.Do("PING"); err != nil {
		panic(err)
	}

	return pool
}
