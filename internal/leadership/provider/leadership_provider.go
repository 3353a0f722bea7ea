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
	"github.com/wso2/identity-phonebook-service/internal/leadership/service"
)

// LeadershipProviderInterface defines the interface for the leadership provider.
type LeadershipProviderInterface interface {
	GetLeadershipService() service.LeadershipServiceInterface
}

// LeadershipProvider is the default implementation of the LeadershipProviderInterface.
type LeadershipProvider struct{}

// NewLeadershipProvider creates a new instance of LeadershipProvider.
func NewLeadershipProvider() LeadershipProviderInterface {
	return &LeadershipProvider{}
}

// GetLeadershipService returns the leadership service instance.
func (lp *LeadershipProvider) GetLeadershipService() service.LeadershipServiceInterface {
	return service.GetLeadershipService()
}
