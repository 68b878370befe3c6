package enrich

import (
	"container/list"
	"sync"

	"github.com/NasmeenI/tablebook/internal/models"
)

// RestaurantCache is a small LRU over restaurant records so that enriching a
// reservation list doesn't refetch the same restaurant on every refresh.
type RestaurantCache struct {
	capacity int
	cache    map[string]*list.Element
	lruList  *list.List
	mu       sync.RWMutex
}

type cacheEntry struct {
	id         string
	restaurant *models.Restaurant
}

func NewRestaurantCache(capacity int) *RestaurantCache {
	return &RestaurantCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lruList:  list.New(),
	}
}

func (c *RestaurantCache) Get(id string) (*models.Restaurant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[id]; found {
		c.lruList.MoveToFront(elem)
		return elem.Value.(*cacheEntry).restaurant, true
	}
	return nil, false
}

func (c *RestaurantCache) Set(id string, restaurant *models.Restaurant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[id]; found {
		c.lruList.MoveToFront(elem)
		elem.Value.(*cacheEntry).restaurant = restaurant
		return
	}

	elem := c.lruList.PushFront(&cacheEntry{id, restaurant})
	c.cache[id] = elem

	if c.lruList.Len() > c.capacity {
		c.evict()
	}
}

func (c *RestaurantCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[id]; found {
		c.lruList.Remove(elem)
		delete(c.cache, id)
	}
}

func (c *RestaurantCache) evict() {
	elem := c.lruList.Back()
	if elem != nil {
		c.lruList.Remove(elem)
		delete(c.cache, elem.Value.(*cacheEntry).id)
	}
}

func (c *RestaurantCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lruList.Len()
}
