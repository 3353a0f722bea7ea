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
	"github.com/wso2/identity-phonebook-service/internal/entry/service"
)

// EntryProviderInterface defines the interface for the entry provider.
type EntryProviderInterface interface {
	GetEntryService() service.EntryServiceInterface
}

// EntryProvider is the default implementation of the EntryProviderInterface.
type EntryProvider struct{}

// NewEntryProvider creates a new instance of EntryProvider.
func NewEntryProvider() EntryProviderInterface {
	return &EntryProvider{}
}

// GetEntryService returns the entry service instance.
func (ep *EntryProvider) GetEntryService() service.EntryServiceInterface {
	return service.GetEntryService()
}
