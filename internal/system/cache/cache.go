/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// Cache is a process-local TTL cache. Expired items are purged every other TTL.
type Cache struct {
	items *gocache.Cache
	ttl   time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewCache creates a new cache with a TTL (time-to-live)
func NewCache(defaultTTL time.Duration) *Cache {
	return &Cache{
		items: gocache.New(defaultTTL, 2*defaultTTL),
		ttl:   defaultTTL,
	}
}

// Get retrieves an item from the cache
func (c *Cache) Get(key string) (interface{}, bool) {

	logger := log.GetLogger()
	value, found := c.items.Get(key)
	if !found {
		logger.Debug(fmt.Sprint("Cache miss for key: ", key))
		return nil, false
	}
	return value, true
}

// Delete removes an item from the cache and advances the generation.
func (c *Cache) Delete(key string) {

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Delete(key)
	c.generation++
}

// Generation returns a token that changes on every Delete. Read it before
// loading a value that will be stored with SetIfUnchanged.
func (c *Cache) Generation() uint64 {

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetIfUnchanged stores the value only when no Delete happened since generation
// was read, so that a load racing an invalidation cannot restore stale data.
func (c *Cache) SetIfUnchanged(key string, value interface{}, generation uint64) bool {

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		log.GetLogger().Debug(fmt.Sprint("Skipping stale cache fill for key: ", key))
		return false
	}
	log.GetLogger().Debug(fmt.Sprint("Setting cache for key: ", key))
	c.items.Set(key, value, c.ttl)
	return true
}
