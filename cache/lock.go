package cache

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"time"
)

const (
	lockTime       = 180
	lockTicker     = 10
	lockGenerateId = "lock:discount_code:generate:"
)

var ErrDistributedLockPreemption = errors.New("distributed lock preemption")

// Both scripts only touch the key while it still carries the caller's token,
// so an instance whose lock expired can not release or extend a newer owner's.
var (
	unlockScript = redis.NewScript(`if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`)
	expireScript = redis.NewScript(`if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("expire", KEYS[1], ARGV[2]) else return 0 end`)
)

func lockGenerateKey(dealId int64) string {
	return fmt.Sprintf("%s%d", lockGenerateId, dealId)
}

// LockGenerate serializes code generation per deal across instances.
func (r *RedisCache) LockGenerate(ctx context.Context, dealId int64) error {
	if r == nil || r.Red == nil {
		return nil
	}
	key, token := lockGenerateKey(dealId), uuid.NewString()
	ret := r.Red.SetNX(key, token, time.Second*lockTime)
	if err := ret.Err(); err != nil {
		return fmt.Errorf("redis set generate nx-->%s", err.Error())
	}
	if !ret.Val() {
		log.Info("LockGenerate lock:", dealId)
		return ErrDistributedLockPreemption
	}
	r.tokens.Store(key, token)
	log.Info("LockGenerate:", dealId)
	r.doLockExpire(ctx, key, token)
	return nil
}

// UnLockGenerate releases the lock only if this instance still owns it.
func (r *RedisCache) UnLockGenerate(dealId int64) error {
	if r == nil || r.Red == nil {
		return nil
	}
	key := lockGenerateKey(dealId)
	token, ok := r.tokens.LoadAndDelete(key)
	if !ok {
		log.Warn("UnLockGenerate not held:", dealId)
		return nil
	}
	n, err := unlockScript.Run(r.Red, []string{key}, token).Int64()
	if err != nil {
		return fmt.Errorf("redis del generate nx-->%s", err.Error())
	}
	if n == 0 {
		log.Warn("UnLockGenerate lost:", dealId)
		return nil
	}
	log.Info("UnLockGenerate:", dealId)
	return nil
}

// doLockExpire keeps the lock alive until ctx is done or ownership is lost.
func (r *RedisCache) doLockExpire(ctx context.Context, key, token string) {
	ticker := time.NewTicker(time.Second * lockTicker)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := expireScript.Run(r.Red, []string{key}, token, lockTime).Int64()
				if err != nil {
					log.Error("doLockExpire err: ", err.Error(), key)
				} else if n == 0 {
					log.Warn("doLockExpire lost:", key)
					return
				}
			case <-ctx.Done():
				log.Debug("doLockExpire done:", key)
				return
			}
		}
	}()
}
