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

package store

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/database/client"
	"github.com/wso2/identity-phonebook-service/internal/system/database/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/database/scripts"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// LeadershipStoreInterface persists the leadership role groups in phonebook_config.
type LeadershipStoreInterface interface {
	GetGroups(ctx context.Context) ([]string, error)
	SaveGroups(ctx context.Context, groups []string) error
	AvailableGroups(ctx context.Context) ([]string, error)
}

// LeadershipStore is the database backed LeadershipStoreInterface.
type LeadershipStore struct{}

// NewLeadershipStore creates a new LeadershipStore.
func NewLeadershipStore() LeadershipStoreInterface {
	return &LeadershipStore{}
}

func dbClient(errorMessage errors2.ErrorMessage) (client.DBClientInterface, string, error) {

	dbProvider := provider.NewDBProvider()
	dbClient, err := dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for leadership configuration"
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, "", errors2.NewServerError(errors2.WithDescription(errorMessage, errorMsg), err)
	}
	return dbClient, dbProvider.GetDBType(), nil
}

// GetGroups returns the configured groups; an absent setting is an empty list.
func (s *LeadershipStore) GetGroups(ctx context.Context) ([]string, error) {

	dbClient, dbType, err := dbClient(errors2.GET_LEADERSHIP_CONFIG)
	if err != nil {
		return nil, err
	}
	results, err := dbClient.ExecuteQuery(ctx, scripts.GetConfigValue[dbType], constants.ConfigLeadershipGroups)
	if err != nil {
		errorMsg := "Failed to fetch leadership groups"
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.GET_LEADERSHIP_CONFIG, errorMsg), err)
	}
	if len(results) == 0 {
		return []string{}, nil
	}

	groups := []string{}
	value := client.String(results[0], "value")
	if value == "" {
		return groups, nil
	}
	if err := json.Unmarshal([]byte(value), &groups); err != nil {
		errorMsg := "Stored leadership groups are not a JSON list"
		log.GetLogger().WithContext(ctx).Warn(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.GET_LEADERSHIP_CONFIG, errorMsg), err)
	}
	return groups, nil
}

// SaveGroups replaces the configured groups.
func (s *LeadershipStore) SaveGroups(ctx context.Context, groups []string) error {

	dbClient, dbType, err := dbClient(errors2.UPDATE_LEADERSHIP_CONFIG)
	if err != nil {
		return err
	}
	if groups == nil {
		groups = []string{}
	}
	value, err := json.Marshal(groups)
	if err != nil {
		return errors2.NewServerError(errors2.WithDescription(errors2.MARSHAL_JSON,
			"Failed to marshal leadership groups"), err)
	}
	if _, err := dbClient.Execute(ctx, scripts.UpsertConfigValue[dbType], constants.ConfigLeadershipGroups,
		string(value)); err != nil {
		errorMsg := "Failed to store leadership groups"
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.WithDescription(errors2.UPDATE_LEADERSHIP_CONFIG, errorMsg),
			errors.Wrap(err, errorMsg))
	}
	return nil
}

// AvailableGroups returns the distinct role-group names defined on any org unit.
func (s *LeadershipStore) AvailableGroups(ctx context.Context) ([]string, error) {

	dbClient, dbType, err := dbClient(errors2.GET_LEADERSHIP_CONFIG)
	if err != nil {
		return nil, err
	}
	results, err := dbClient.ExecuteQuery(ctx, scripts.GetRoleGroupNames[dbType])
	if err != nil {
		errorMsg := "Failed to fetch role group names"
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.GET_LEADERSHIP_CONFIG, errorMsg), err)
	}
	names := make([]string, 0, len(results))
	for _, row := range results {
		names = append(names, client.String(row, "name"))
	}
	return names, nil
}
