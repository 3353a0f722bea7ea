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

package authz

import (
	"fmt"

	"github.com/wso2/identity-phonebook-service/internal/system/authn"
	"github.com/wso2/identity-phonebook-service/internal/system/config"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// readOperations are open to every authenticated caller.
var readOperations = map[string]bool{
	constants.OperationSearch:    true,
	constants.OperationReadEntry: true,
}

// IsAdmin reports whether the principal holds the configured admin permission or role.
func IsAdmin(principal *authn.Principal) bool {

	authConfig := config.GetPhonebookRuntime().Config.Auth
	return principal.Perm == authConfig.AdminPerm || principal.HasRole(authConfig.AdminRole)
}

// ValidatePermission checks whether the principal may perform the operation.
func ValidatePermission(principal *authn.Principal, operation string) bool {

	logger := log.GetLogger()
	if principal == nil {
		logger.Debug(fmt.Sprintf("No principal for operation: %s", operation))
		return false
	}
	if readOperations[operation] {
		return true
	}
	if IsAdmin(principal) {
		return true
	}
	logger.Debug(fmt.Sprintf("Principal %s is not allowed to perform %s", principal.Subject, operation))
	return false
}
