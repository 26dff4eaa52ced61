package cache

import "time"

// SetClock overrides the cache's notion of now for tests.
func SetClock(c *Cache, now func() time.Time) {
	c.now = now
}
