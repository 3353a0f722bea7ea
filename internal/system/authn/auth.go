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

package authn

import (
	"net/http"
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/identity-phonebook-service/internal/system/config"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// Principal is the authenticated caller.
type Principal struct {
	Subject string
	Perm    string
	Roles   []string
}

// HasRole reports whether the principal carries the role.
func (p *Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// Claims are the token claims the phonebook reads.
type Claims struct {
	jwt.RegisteredClaims
	Perm  string   `json:"perm"`
	Roles []string `json:"roles"`
}

// ValidateToken verifies an HS256 signed bearer token and returns its principal.
// The token must carry an expiry and a subject; the audience is only checked
// when one is configured.
func ValidateToken(token string) (*Principal, error) {

	logger := log.GetLogger()
	authConfig := config.GetPhonebookRuntime().Config.Auth
	if authConfig.JWTSecret == "" {
		logger.Warn("No JWT secret configured, rejecting token.")
		return nil, unauthorizedError()
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if authConfig.Audience != "" {
		options = append(options, jwt.WithAudience(authConfig.Audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(authConfig.JWTSecret), nil
	}, options...)
	if err != nil {
		logger.Debug("Token validation failed.", log.Error(err))
		return nil, unauthorizedError()
	}
	if claims.Subject == "" {
		logger.Debug("Token does not have a subject claim.")
		return nil, unauthorizedError()
	}

	return &Principal{
		Subject: claims.Subject,
		Perm:    claims.Perm,
		Roles:   claims.Roles,
	}, nil
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: errors2.UN_AUTHORIZED.Description,
	}, http.StatusUnauthorized)
}
