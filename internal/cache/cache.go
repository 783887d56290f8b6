package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// NoExpiration keeps entries for the lifetime of the process
const NoExpiration = gocache.NoExpiration

// Cache defines the interface for caching values of type V
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	Len() int
}

// Key builds a namespaced cache key
func Key(namespace, name string) string {
	return "exportcheck:v1:" + namespace + ":" + name
}
