package usecase

import (
	"sync"
	"time"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

const (
	authCacheTTL = 1 * time.Minute
)

type cachedSession struct {
	user      *model.User
	expiresAt time.Time
}

// authCache remembers resolved session tokens so the manager gate does not
// hit the primary store on every trigger. Entries never outlive the session.
type authCache struct {
	cache sync.Map
	ttl   time.Duration
}

func newAuthCache() *authCache {
	return &authCache{ttl: authCacheTTL}
}

func (c *authCache) get(token string, now time.Time) (*model.User, bool) {
	val, ok := c.cache.Load(token)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedSession)
	if !now.Before(cached.expiresAt) {
		c.cache.Delete(token)
		return nil, false
	}

	user := *cached.user
	return &user, true
}

func (c *authCache) set(token string, user *model.User, sessionEnd, now time.Time) {
	if c.ttl <= 0 {
		return
	}

	expiresAt := now.Add(c.ttl)
	if !sessionEnd.IsZero() && sessionEnd.Before(expiresAt) {
		expiresAt = sessionEnd
	}

	copied := *user
	c.cache.Store(token, &cachedSession{
		user:      &copied,
		expiresAt: expiresAt,
	})
}
