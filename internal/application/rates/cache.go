package rates

import (
	"sync"

	"github.com/jhoicas/Despacho-api/internal/domain/entity"
)

// FetchFunc trae los overrides vigentes de un artículo desde la persistencia.
type FetchFunc func(articleID string) ([]*entity.CustomerRate, error)

// RateCache es la caché de overrides por artículo de una sesión masiva.
// Invariantes: un artículo ya cacheado nunca se vuelve a buscar, y dos fetches
// concurrentes del mismo artículo se deduplican (el segundo espera al primero).
// Un fetch fallido no se cachea: el llamador lo trata como "sin tarifas
// conocidas" y un toggle posterior puede reintentar.
type RateCache struct {
	mu       sync.Mutex
	fetch    FetchFunc
	entries  map[string][]*entity.CustomerRate
	inflight map[string]chan struct{}
}

// NewRateCache construye la caché con la función de fetch inyectada.
func NewRateCache(fetch FetchFunc) *RateCache {
	return &RateCache{
		fetch:    fetch,
		entries:  make(map[string][]*entity.CustomerRate),
		inflight: make(map[string]chan struct{}),
	}
}

// GetOrFetch devuelve los overrides del artículo, consultando la persistencia
// solo la primera vez. Seguro para llamadas concurrentes sobre claves iguales
// o distintas.
func (c *RateCache) GetOrFetch(articleID string) ([]*entity.CustomerRate, error) {
	for {
		c.mu.Lock()
		if rates, ok := c.entries[articleID]; ok {
			c.mu.Unlock()
			return rates, nil
		}
		wait, ok := c.inflight[articleID]
		if !ok {
			break // este goroutine hace el fetch
		}
		c.mu.Unlock()
		<-wait // otro fetch en vuelo: esperar y reevaluar
	}

	done := make(chan struct{})
	c.inflight[articleID] = done
	c.mu.Unlock()

	rates, err := c.fetch(articleID)

	c.mu.Lock()
	delete(c.inflight, articleID)
	if err == nil {
		c.entries[articleID] = rates
	}
	c.mu.Unlock()
	close(done)

	if err != nil {
		return nil, err
	}
	return rates, nil
}

// Peek devuelve la entrada cacheada sin disparar fetch.
func (c *RateCache) Peek(articleID string) ([]*entity.CustomerRate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rates, ok := c.entries[articleID]
	return rates, ok
}

// Cached indica si el artículo ya está en caché.
func (c *RateCache) Cached(articleID string) bool {
	_, ok := c.Peek(articleID)
	return ok
}

// Invalidate descarta las entradas de los artículos dados (tras un apply, para
// que el siguiente preview refleje lo persistido).
func (c *RateCache) Invalidate(articleIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range articleIDs {
		delete(c.entries, id)
	}
}
