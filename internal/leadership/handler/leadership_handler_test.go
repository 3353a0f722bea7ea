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

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/leadership/model"
	"github.com/wso2/identity-phonebook-service/internal/leadership/service"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"github.com/wso2/identity-phonebook-service/test/setup"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	setup.UseTestConfig()
	os.Exit(m.Run())
}

type fakeService struct {
	groups []string
}

func (f *fakeService) GetGroups(context.Context) ([]string, error) { return f.groups, nil }

func (f *fakeService) GetConfig(context.Context) (*model.LeadershipConfig, error) {
	return &model.LeadershipConfig{Groups: f.groups, AvailableGroups: []string{"Leitung", "Mitarbeiter"}}, nil
}

func (f *fakeService) UpdateGroups(ctx context.Context, groups []string) (*model.LeadershipConfig, error) {
	f.groups = groups
	return f.GetConfig(ctx)
}

type fakeProvider struct{ svc *fakeService }

func (p fakeProvider) GetLeadershipService() service.LeadershipServiceInterface { return p.svc }

func TestLeadershipConfig(t *testing.T) {
	svc := &fakeService{groups: []string{}}
	h := &LeadershipHandler{provider: fakeProvider{svc: svc}}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/phonebook/config/leadership-groups", nil)
	r.Header.Set("Authorization", "Bearer "+setup.SignedToken(t, "u1", "autor"))
	h.GetConfig(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPut, "/api/phonebook/config/leadership-groups",
		strings.NewReader(`{"groups":["Leitung"]}`))
	r.Header.Set("Authorization", "Bearer "+setup.SignedToken(t, "u2", "root"))
	h.UpdateConfig(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Leitung"}, svc.groups)
	assert.JSONEq(t, `{"groups":["Leitung"],"available_groups":["Leitung","Mitarbeiter"]}`, w.Body.String())

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/phonebook/config/leadership-groups", nil)
	r.Header.Set("Authorization", "Bearer "+setup.SignedToken(t, "u2", "root"))
	h.GetConfig(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
