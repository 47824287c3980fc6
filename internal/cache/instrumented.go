package cache

// instrumentedCache decorates a Cache with per-group Prometheus counters so
// dashboards can tell the search cache's hit rate apart from any other cache
// the process runs. Callers get instrumentation for free by setting Group in
// ProviderConfig; nothing outside this package touches the counters.
type instrumentedCache struct {
	inner Cache
	group string
}

// newInstrumentedCache wraps inner for the given group. Entry counts are
// reported by a collector that calls inner.Len() at scrape time, which stays
// correct for backends like Redis where TTL expiry removes entries outside
// the application's control.
func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{inner: inner, group: group}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	value, ok := c.inner.Get(key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return value, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *instrumentedCache) Contains(key string) bool {
	return c.inner.Contains(key)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

// Close unregisters the entries collector before closing the inner cache so
// a later cache for the same group can register cleanly.
func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.inner.Close()
}
