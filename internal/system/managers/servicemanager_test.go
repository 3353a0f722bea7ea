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

package managers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"github.com/wso2/identity-phonebook-service/test/setup"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	setup.UseTestConfig()
	os.Exit(m.Run())
}

func TestRegisterServices_Routes(t *testing.T) {
	db := setup.SetupSQLite(t)
	require.NoError(t, setup.SeedDirectory(context.Background(), db))

	mux := http.NewServeMux()
	require.NoError(t, NewServiceManager(mux).RegisterServices("/api"))
	token := setup.SignedToken(t, "p1", "autor")

	cases := []struct {
		method string
		target string
		auth   bool
		status int
	}{
		{http.MethodGet, "/health", false, http.StatusOK},
		{http.MethodGet, "/ready", false, http.StatusOK},
		{http.MethodGet, "/api/phonebook/search/Meier?in=person_name", false, http.StatusUnauthorized},
		{http.MethodGet, "/api/phonebook/search/Meier?in=person_name", true, http.StatusOK},
		{http.MethodGet, "/api/phonebook/search/Meier", true, http.StatusBadRequest},
		{http.MethodPost, "/api/phonebook/search/Meier?in=person_name", true, http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/phonebook/all", true, http.StatusOK},
		{http.MethodGet, "/api/phonebook/ranges/Raum", true, http.StatusOK},
		{http.MethodGet, "/api/phonebook/entry/4711", true, http.StatusNotFound},
		{http.MethodGet, "/api/phonebook/entry/external/nope", true, http.StatusNotFound},
		{http.MethodDelete, "/api/phonebook/entry/4711", true, http.StatusForbidden},
		{http.MethodPut, "/api/phonebook/personalphone/mschulz", true, http.StatusForbidden},
		{http.MethodGet, "/api/phonebook/config/leadership-groups", true, http.StatusForbidden},
		{http.MethodGet, "/api/phonebook/unknown", true, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.auth {
				r.Header.Set("Authorization", "Bearer "+token)
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, r)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}
