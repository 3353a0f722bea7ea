//go:build integration

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

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dirModel "github.com/wso2/identity-phonebook-service/internal/directory/model"
	entryModel "github.com/wso2/identity-phonebook-service/internal/entry/model"
	leadershipModel "github.com/wso2/identity-phonebook-service/internal/leadership/model"
	"github.com/wso2/identity-phonebook-service/test/setup"
)

func call(t *testing.T, token, method, target string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	raw := []byte(nil)
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	r := httptest.NewRequest(method, target, bytes.NewReader(raw))
	r.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, r)
	return w
}

func userToken(t *testing.T) string {
	return setup.SignedToken(t, "p2", "autor")
}

func adminToken(t *testing.T) string {
	return setup.SignedToken(t, "p1", "root")
}

func searchPage(t *testing.T, target string) dirModel.PaginatedResult {
	t.Helper()
	w := call(t, userToken(t), http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page dirModel.PaginatedResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestSearch_PersonName(t *testing.T) {
	w := call(t, userToken(t), http.MethodGet, "/api/phonebook/search/Schulz?in=person_name", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	var page dirModel.PaginatedResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.NotEmpty(t, page.Items)
	for _, item := range page.Items {
		assert.Equal(t, "Schulz", item.LastName)
	}

	w = call(t, userToken(t), http.MethodGet, "/api/phonebook/search/Schulz?in=person_name", nil,
		"If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)
}

func TestSearch_HiddenPersonExcluded(t *testing.T) {
	page := searchPage(t, "/api/phonebook/search/Versteckt?in=person_name")
	assert.Empty(t, page.Items)
}

func TestRanges_NaturalOrder(t *testing.T) {
	w := call(t, userToken(t), http.MethodGet, "/api/phonebook/ranges/Raum", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ranges []dirModel.Range
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ranges))
	require.Len(t, ranges, 2)
	assert.Equal(t, "o3", ranges[0].ID)
	assert.Equal(t, "o2", ranges[1].ID)
}

func TestEntry_Lifecycle(t *testing.T) {
	admin := adminToken(t)

	create := entryModel.CreateEntryRequest{
		Name:       "Pforte Nord",
		Phone:      "0441-999",
		OwnerRef:   "o1",
		ExternalID: "pforte-nord",
		Room:       "N-0",
	}
	w := call(t, admin, http.MethodPut, "/api/phonebook/entry", create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	location := w.Header().Get("Location")
	require.NotEmpty(t, location)

	w = call(t, admin, http.MethodPut, "/api/phonebook/entry", create)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = call(t, userToken(t), http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var entry entryModel.ManualEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "Pforte Nord", entry.Name)
	assert.Equal(t, entryModel.OwnerOrgUnit, entry.Owner.Kind)

	w = call(t, admin, http.MethodPatch, "/api/phonebook/entry/external/pforte-nord",
		map[string]interface{}{"room": "N-1"})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = call(t, userToken(t), http.MethodGet, "/api/phonebook/entry/external/pforte-nord", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entry = entryModel.ManualEntry{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	require.NotNil(t, entry.Room)
	assert.Equal(t, "N-1", *entry.Room)

	page := searchPage(t, "/api/phonebook/search/Pforte?in=person_name")
	assert.Len(t, page.Items, 1)

	w = call(t, admin, http.MethodDelete, location, nil)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	w = call(t, userToken(t), http.MethodGet, location, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeadershipGroups(t *testing.T) {
	w := call(t, adminToken(t), http.MethodPut, "/api/phonebook/config/leadership-groups",
		leadershipModel.LeadershipConfigUpdate{Groups: []string{" Leitung ", "Leitung"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var conf leadershipModel.LeadershipConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conf))
	assert.Equal(t, []string{"Leitung"}, conf.Groups)
	assert.ElementsMatch(t, []string{"Leitung", "Mitarbeiter"}, conf.AvailableGroups)

	assert.NotEmpty(t, searchPage(t, "/api/phonebook/search/Meier?in=org_unit_leadership").Items)
	assert.Empty(t, searchPage(t, "/api/phonebook/search/Schulz?in=org_unit_leadership").Items)
}

func TestPersonalPhone_AdminOnly(t *testing.T) {
	request := dirModel.PersonalPhoneRequest{Number: "0151-777"}

	w := call(t, userToken(t), http.MethodPut, "/api/phonebook/personalphone/akoch", request)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, adminToken(t), http.MethodPut, "/api/phonebook/personalphone/akoch", request)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, adminToken(t), http.MethodDelete, "/api/phonebook/personalphone/akoch", nil)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
