package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/zaironnya/KrugoBot/internal/domain"
	"github.com/zaironnya/KrugoBot/internal/retry"
)

// MembershipSource answers what status a user holds in a chat.
type MembershipSource interface {
	MemberStatus(ctx context.Context, chatID, userID int64) (string, error)
}

// Statuses that grant access. Anything else, including "left", "kicked"
// and unknown values, does not.
var authorizedStatuses = map[string]bool{
	"member":        true,
	"administrator": true,
	"creator":       true,
}

var errNotMemberYet = errors.New("membership not visible yet")

const (
	recheckAttempts = 3
	recheckDelay    = 2 * time.Second
)

// AccessGate answers "is this user currently authorized?" using a cached
// channel-membership check.
type AccessGate struct {
	source    MembershipSource
	cache     *domain.SubscriptionCache
	channelID int64
	log       *zap.Logger

	recheckAttempts int
	recheckDelay    time.Duration
}

// NewAccessGate creates a gate for the configured channel.
func NewAccessGate(source MembershipSource, cache *domain.SubscriptionCache, channelID int64, log *zap.Logger) *AccessGate {
	return &AccessGate{
		source:          source,
		cache:           cache,
		channelID:       channelID,
		log:             log,
		recheckAttempts: recheckAttempts,
		recheckDelay:    recheckDelay,
	}
}

// IsAuthorized reports whether the user may submit videos. Without
// forceRefresh a fresh cache entry is trusted and no external call is
// made. forceRefresh re-queries with a few spaced attempts, because a
// just-completed subscription is not always immediately visible to the
// membership source. The outcome always overwrites the cache entry.
// Transient query failures count as "not a member" (fail closed).
func (g *AccessGate) IsAuthorized(ctx context.Context, userID int64, forceRefresh bool) bool {
	if !forceRefresh {
		if isMember, ok := g.cache.Lookup(userID); ok {
			return isMember
		}
		isMember := g.query(ctx, userID)
		g.cache.Put(userID, isMember)
		return isMember
	}

	isMember := false
	_ = retry.Do(ctx, g.recheckAttempts, retry.Constant(g.recheckDelay), func() error {
		if g.query(ctx, userID) {
			isMember = true
			return nil
		}
		return errNotMemberYet
	})
	g.cache.Put(userID, isMember)
	return isMember
}

func (g *AccessGate) query(ctx context.Context, userID int64) bool {
	status, err := g.source.MemberStatus(ctx, g.channelID, userID)
	if err != nil {
		g.log.Warn("membership check failed", zap.Int64("user", userID), zap.Error(err))
		return false
	}
	return authorizedStatuses[status]
}
