package constants

import "time"

// Redis key and TTL conventions for the Skybook application.
// Pattern: skybook:{module}:{operation}:{identifier}

const (
	CACHE_PREFIX = "skybook"
)

// ================== READ-PATH CACHE ==================

// Prefixes used by the read-cache decorator; the full key is
// prefix + ":" + request path (+ "?" + query when present).
const (
	CACHE_KEY_FLIGHTS_READ = CACHE_PREFIX + ":flights:read"
)

// Read-path responses are cached for a fixed 600 seconds.
const (
	TTL_READ_CACHE = 600 * time.Second
)

// ================== CHECKOUT SESSIONS ==================

const (
	SESSION_KEY_CHECKOUT = CACHE_PREFIX + ":checkout:session:" // + session-id
)

// ================== RATE LIMITING ==================

const (
	RATELIMIT_KEY_PREFIX = CACHE_PREFIX + ":ratelimit"
)
