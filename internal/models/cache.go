package models

import (
	"fmt"
	"hash/fnv"
	"time"
)

// CacheEntry is one stored payload keyed by the fetch parameters. Entries are
// never explicitly invalidated on query change: a new query hash produces a
// different key, which is simply a miss.
type CacheEntry struct {
	Key       string     `badgerhold:"key"`
	Data      RawPayload `json:"data"`
	Timestamp time.Time  `json:"timestamp"`
}

// Age returns how old the entry is.
func (e *CacheEntry) Age() time.Duration {
	return time.Since(e.Timestamp)
}

// Expired reports whether the entry has outlived the TTL.
func (e *CacheEntry) Expired(ttl time.Duration) bool {
	return e.Timestamp.IsZero() || e.Age() >= ttl
}

// CacheKey derives the cache key from the fetch parameters and the hash of
// the query texts shipped with the request.
func CacheKey(daysBack int, docPeriod string, queryHash uint64) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%016x", daysBack, docPeriod, queryHash)
	return fmt.Sprintf("payload:%016x", h.Sum64())
}

// QueryHash hashes the query texts sent to the webhook so that editing either
// query rolls the cache key.
func QueryHash(dashboardQuery, documentationQuery string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(dashboardQuery))
	h.Write([]byte{0})
	h.Write([]byte(documentationQuery))
	return h.Sum64()
}
