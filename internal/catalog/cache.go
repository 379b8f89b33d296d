package catalog

import (
	"github.com/couchcryptid/coffee-catalog/internal/cache"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
)

// CachedCatalog memoizes filter queries in an LRU keyed by the canonical
// form of the criteria. Every other query is served by the embedded Catalog.
type CachedCatalog struct {
	*Catalog
	cache   *cache.LRU[string, []domain.Coffee]
	metrics *observability.Metrics
}

// NewCached wraps c with a filter cache of at most size entries.
func NewCached(c *Catalog, size int, metrics *observability.Metrics) *CachedCatalog {
	return &CachedCatalog{
		Catalog: c,
		cache:   cache.New[string, []domain.Coffee](size),
		metrics: metrics,
	}
}

// Coffees returns the coffees matching crit. Callers receive their own copies.
func (c *CachedCatalog) Coffees(crit domain.Criteria) []domain.Coffee {
	key := crit.Key()
	if result, ok := c.cache.Get(key); ok {
		c.metrics.QueryCache.WithLabelValues("hit").Inc()
		c.metrics.FilterResults.Observe(float64(len(result)))
		return domain.CloneCoffees(result)
	}
	c.metrics.QueryCache.WithLabelValues("miss").Inc()

	result := c.Catalog.Coffees(crit)
	c.cache.Put(key, result)
	c.metrics.FilterResults.Observe(float64(len(result)))
	return domain.CloneCoffees(result)
}
