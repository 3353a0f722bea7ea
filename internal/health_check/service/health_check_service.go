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

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wso2/identity-phonebook-service/internal/system/database/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/database/scripts"
)

// Readiness describes a successful readiness probe.
type Readiness struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) (*Readiness, error)
}

// HealthCheckService probes the database and the phonebook schema.
type HealthCheckService struct {
	dbProvider provider.DBProviderInterface
	timeout    time.Duration
}

// NewHealthCheckService creates a service probing the database behind dbProvider.
// Each probe gives up after timeout.
func NewHealthCheckService(dbProvider provider.DBProviderInterface, timeout time.Duration) HealthCheckServiceInterface {
	return &HealthCheckService{dbProvider: dbProvider, timeout: timeout}
}

// CheckReadiness pings the database and checks that the entry table is reachable.
func (h *HealthCheckService) CheckReadiness(ctx context.Context) (*Readiness, error) {

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	dbClient, err := h.dbProvider.GetDBClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create database client: %v", err)
	}
	if err := dbClient.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database connectivity check failed: %v", err)
	}
	dbType := h.dbProvider.GetDBType()
	probe, ok := scripts.ProbeSchema[dbType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if _, err := dbClient.ExecuteQuery(ctx, probe); err != nil {
		return nil, fmt.Errorf("phonebook schema is not available: %v", err)
	}
	return &Readiness{Status: "ready", Database: dbType}, nil
}
