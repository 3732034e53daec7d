package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig configures the token bucket placed in front of the
// login and register endpoints.  Capacity is the burst size; RefillTokens
// are added every RefillInterval.  The same numbers drive the Redis bucket
// and the in-process fallback.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration // idle bucket expiry in Redis
	KeyStrategy    string        // ip | user | route | ip_user | ip_route | user_route
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables.  The defaults allow a
// burst of 10 auth attempts per client and route, refilled one every 6s.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 10),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", 6*time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    strings.ToLower(envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route")),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
	return cfg.normalize()
}

// normalize clamps values the bucket cannot work with.  TTL is kept above
// five refill intervals so a bucket is not dropped while still draining.
func (c RateLimitConfig) normalize() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c
}

func envStr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	b, err := strconv.ParseBool(envStr(k, strconv.FormatBool(d)))
	if err != nil {
		switch strings.ToLower(os.Getenv(k)) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
		return d
	}
	return b
}

func envInt(k string, d int) int {
	if n, err := strconv.Atoi(envStr(k, "")); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	if dur, err := time.ParseDuration(envStr(k, "")); err == nil {
		return dur
	}
	return d
}
