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

package setup

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/identity-phonebook-service/internal/system/authn"
	"github.com/wso2/identity-phonebook-service/internal/system/config"
)

// TestSecret signs every token minted by SignedToken.
const TestSecret = "phonebook-test-secret"

// UseTestConfig installs a runtime configuration that accepts tokens signed with TestSecret.
func UseTestConfig(mutate ...func(*config.Config)) {
	conf := config.Config{
		Auth: config.AuthConfig{JWTSecret: TestSecret},
	}
	for _, m := range mutate {
		m(&conf)
	}
	config.OverridePhonebookRuntime(conf)
}

// SignedToken returns an HS256 token for subject valid for one hour.
func SignedToken(t testing.TB, subject, perm string, roles ...string) string {
	t.Helper()
	claims := authn.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Perm:  perm,
		Roles: roles,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
