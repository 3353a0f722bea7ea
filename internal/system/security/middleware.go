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

package security

import (
	"net/http"
	"strings"

	"github.com/wso2/identity-phonebook-service/internal/system/authn"
	"github.com/wso2/identity-phonebook-service/internal/system/authz"
	pcontext "github.com/wso2/identity-phonebook-service/internal/system/context"
	"github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// AuthnAndAuthz performs authentication and authorization for the given HTTP request and operation.
func AuthnAndAuthz(r *http.Request, operation string) (*authn.Principal, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.UN_AUTHORIZED.Code,
			Message:     errors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
		return nil, clientError
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	//  Validate token
	principal, err := authn.ValidateToken(token)
	if err != nil {
		log.GetLogger().WithContext(r.Context()).Audit(log.AuditEvent{
			InitiatorType: log.InitiatorTypeUser,
			TargetID:      r.URL.Path,
			TargetType:    log.TargetTypeEndpoint,
			ActionID:      log.ActionAuthenticationFailure,
			TraceID:       pcontext.GetTraceID(r.Context()),
		})
		return nil, err
	}

	//  Validate authorization
	if !authz.ValidatePermission(principal, operation) {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.FORBIDDEN.Code,
			Message:     errors.FORBIDDEN.Message,
			Description: "Do not have permission to perform this operation",
		}, http.StatusForbidden)
		return nil, clientError
	}
	return principal, nil
}
