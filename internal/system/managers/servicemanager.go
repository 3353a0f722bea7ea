/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
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

package managers

import (
	"net/http"

	"github.com/wso2/identity-phonebook-service/internal/health_check/handler"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

// RegisterServices mounts the phonebook API below apiBasePath and the health probes at the root.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	phonebookService := services.NewPhonebookService()
	healthHandler := handler.NewHealthHandler()

	phonebookPath := apiBasePath + constants.PhonebookApiPath
	sm.mux.Handle(phonebookPath+"/", http.StripPrefix(apiBasePath, http.HandlerFunc(phonebookService.Route)))
	sm.mux.HandleFunc("GET /health", healthHandler.HandleHealth)
	sm.mux.HandleFunc("GET /ready", healthHandler.HandleReadiness)
	return nil
}
