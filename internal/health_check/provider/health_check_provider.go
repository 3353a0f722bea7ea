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

package provider

import (
	"time"

	"github.com/wso2/identity-phonebook-service/internal/health_check/service"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	dbprovider "github.com/wso2/identity-phonebook-service/internal/system/database/provider"
)

// HealthCheckProviderInterface hands the health handler its readiness probe.
type HealthCheckProviderInterface interface {
	GetHealthCheckService() service.HealthCheckServiceInterface
}

// HealthCheckProvider builds probes against the process-wide pool.
type HealthCheckProvider struct {
	timeout time.Duration
}

// NewHealthCheckProvider creates a provider using the default probe timeout.
func NewHealthCheckProvider() HealthCheckProviderInterface {
	return &HealthCheckProvider{timeout: constants.ReadinessTimeout}
}

func (p *HealthCheckProvider) GetHealthCheckService() service.HealthCheckServiceInterface {
	return service.NewHealthCheckService(dbprovider.NewDBProvider(), p.timeout)
}
