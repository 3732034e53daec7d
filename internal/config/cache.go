package config

import (
	"os"
	"strings"
	"time"
)

// CacheConfig controls the Redis response cache in front of GET
// /api/search.  Offers are drawn at random per request, so the cache is
// what keeps a client's repeated query for the same route and date stable
// for TTL.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // upper-cased HTTP methods eligible for caching
	TTL          time.Duration
	KeyStrategy  string // route | method_route | method_route_query | route_query
	Prefix       string
	MaxBodyBytes int // larger responses are served but not stored
}

// LoadCacheConfig reads CACHE_* variables.  A non-positive CACHE_TTL
// disables the cache.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  strings.ToLower(getenv("CACHE_KEY_STRATEGY", "route_query")),
		Prefix:       getenv("CACHE_PREFIX", "search"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.TTL <= 0 || len(cfg.Methods) == 0 {
		cfg.Enabled = false
	}
	return cfg
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			m[p] = true
		}
	}
	return m
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
