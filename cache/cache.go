package cache

import (
	"context"
	"github.com/go-redis/redis"
	"github.com/scorpiotzh/mylog"
	"sync"
)

type RedisCache struct {
	Ctx context.Context
	Red *redis.Client

	// lock values held by this instance, keyed by redis key
	tokens sync.Map
}

var (
	log = mylog.NewLogger("cache", mylog.LevelDebug)
)
