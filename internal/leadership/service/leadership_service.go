/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
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

package service

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/wso2/identity-phonebook-service/internal/leadership/model"
	"github.com/wso2/identity-phonebook-service/internal/leadership/store"
	"github.com/wso2/identity-phonebook-service/internal/system/cache"
	"github.com/wso2/identity-phonebook-service/internal/system/config"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// LeadershipServiceInterface reads and updates the leadership role groups.
type LeadershipServiceInterface interface {
	GetGroups(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context) (*model.LeadershipConfig, error)
	UpdateGroups(ctx context.Context, groups []string) (*model.LeadershipConfig, error)
}

// LeadershipService caches the configured groups until they are updated or the TTL passes.
type LeadershipService struct {
	store store.LeadershipStoreInterface
	cache *cache.Cache
}

var (
	sharedCache     *cache.Cache
	sharedCacheOnce sync.Once
)

func leadershipCache() *cache.Cache {
	sharedCacheOnce.Do(func() {
		sharedCache = cache.NewCache(config.GetPhonebookRuntime().Config.Phonebook.LeadershipTTL())
	})
	return sharedCache
}

// GetLeadershipService returns the service backed by the database and the process-wide cache.
func GetLeadershipService() LeadershipServiceInterface {
	return NewLeadershipService(store.NewLeadershipStore(), leadershipCache())
}

// NewLeadershipService creates a service over the given store and cache.
func NewLeadershipService(s store.LeadershipStoreInterface, c *cache.Cache) LeadershipServiceInterface {
	return &LeadershipService{store: s, cache: c}
}

// GetGroups returns the configured groups, from the cache when possible.
func (l *LeadershipService) GetGroups(ctx context.Context) ([]string, error) {

	if cached, found := l.cache.Get(constants.ConfigLeadershipGroups); found {
		if groups, ok := cached.([]string); ok {
			return append([]string(nil), groups...), nil
		}
	}
	generation := l.cache.Generation()
	groups, err := l.store.GetGroups(ctx)
	if err != nil {
		return nil, err
	}
	l.cache.SetIfUnchanged(constants.ConfigLeadershipGroups, groups, generation)
	return append([]string(nil), groups...), nil
}

// GetConfig returns the configured groups together with every group name that could be selected.
func (l *LeadershipService) GetConfig(ctx context.Context) (*model.LeadershipConfig, error) {

	groups, err := l.GetGroups(ctx)
	if err != nil {
		return nil, err
	}
	available, err := l.store.AvailableGroups(ctx)
	if err != nil {
		return nil, err
	}
	return &model.LeadershipConfig{Groups: groups, AvailableGroups: available}, nil
}

// UpdateGroups replaces the configured groups and drops the cached copy.
// Names are trimmed, blanks dropped and duplicates collapsed.
func (l *LeadershipService) UpdateGroups(ctx context.Context, groups []string) (*model.LeadershipConfig, error) {

	if groups == nil {
		return nil, errors2.NewClientError(errors2.WithDescription(errors2.INVALID_LEADERSHIP_CONFIG,
			"The groups field is required."), http.StatusBadRequest)
	}

	seen := map[string]bool{}
	normalized := []string{}
	for _, group := range groups {
		group = strings.TrimSpace(group)
		if group == "" || seen[group] {
			continue
		}
		seen[group] = true
		normalized = append(normalized, group)
	}
	sort.Strings(normalized)

	if err := l.store.SaveGroups(ctx, normalized); err != nil {
		return nil, err
	}
	l.cache.Delete(constants.ConfigLeadershipGroups)
	log.GetLogger().WithContext(ctx).Info("Leadership groups updated", log.Strings("groups", normalized))

	return l.GetConfig(ctx)
}
