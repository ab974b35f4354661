package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/2beens/ironlog/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	// freecache minimum is 512KB, one entry is well below 100 bytes
	loginCacheSize          = 1024 * 1024
	loginCacheExpireSeconds = 30
)

// LoginChecker resolves session tokens to user ids. Lookups hit a short lived
// in-process cache first, then redis.
type LoginChecker struct {
	redisClient *redis.Client
	cache       *freecache.Cache
}

func NewLoginChecker(redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		redisClient: redisClient,
		cache:       freecache.NewCache(loginCacheSize),
	}
}

func (c *LoginChecker) IsLogged(ctx context.Context, token string) (_ int, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.isLogged")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token == "" {
		return 0, false, nil
	}

	cacheKey := []byte(token)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		if userID, err := parseUserID(string(cached)); err == nil {
			return userID, true, nil
		}
		c.cache.Del(cacheKey)
	}

	val, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	userID, err := parseUserID(val)
	if err != nil {
		return 0, false, err
	}

	if err := c.cache.Set(cacheKey, []byte(strconv.Itoa(userID)), loginCacheExpireSeconds); err != nil {
		log.Warnf("login checker, cache session: %s", err)
	}

	return userID, true, nil
}

// Forget drops the token from the local cache, used on logout.
func (c *LoginChecker) Forget(token string) {
	c.cache.Del([]byte(token))
}
