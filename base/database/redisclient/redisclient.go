package redisclient

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/swiftbid/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
	idleTimeout  = 240 * time.Second

	dialRetries = 3
)

// Config of a redis pool
type Config struct {
	URI      string
	Password string
	DB       int
	// PoolMultiplier * NumCPU is the max active connections, a quarter of it stays idle
	PoolMultiplier float64
	// Retry redials a few times with jitter before giving up
	Retry bool
}

// MustConnect connects to one redis uri or panics
func MustConnect(cfg Config) *redis.Pool {
	p, err := Connect(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// Connect builds a pool and verifies one connection with PING
func Connect(cfg Config) (*redis.Pool, error) {
	maxIdle, maxActive := 16, 64
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		maxIdle = int(cpu*cfg.PoolMultiplier/4) + 1
		maxActive = int(cpu*cfg.PoolMultiplier) + 1
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
		redis.DialDatabase(cfg.DB),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	p := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: idleTimeout,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.URI, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	attempts := 1
	if cfg.Retry {
		attempts += dialRetries
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(time.Second + time.Duration(r.Intn(1000))*time.Millisecond)
		}
		if err = ping(p); err == nil {
			break
		}
		log.Log().WithFields(log.Fields{
			"redisURI": cfg.URI,
			"err":      err,
			"attempt":  i,
		}).Error("fail to ping Redis")
	}
	if err != nil {
		return nil, err
	}

	log.Log().WithField("redisURI", cfg.URI).Info("redis connected")
	return p, nil
}

func ping(p *redis.Pool) error {
	c := p.Get()
	defer c.Close()
	_, err := c.Do("PING")
	return err
}
