package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ConversationCache keeps the session_id -> conversation id mapping in
// memory so repeat chat turns skip the get-or-create round trip.
// Conversation ids are immutable, so entries never need invalidation;
// expiry just bounds memory.
type ConversationCache struct {
	cache *cache.Cache
}

func NewConversationCache() *ConversationCache {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationCache{
		cache: c,
	}
}

func (r *ConversationCache) Save(sessionID string, conversationID int64) {
	r.cache.Set(sessionID, conversationID, cache.DefaultExpiration)
}

func (r *ConversationCache) Get(sessionID string) (int64, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(int64), true
	}
	return 0, false
}

func (r *ConversationCache) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
