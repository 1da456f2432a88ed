// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 1 * time.Hour

// AggregationCacheKey is the Redis key holding the latest aggregate-all payload.
const AggregationCacheKey = "aggregation:flight-users:all"
