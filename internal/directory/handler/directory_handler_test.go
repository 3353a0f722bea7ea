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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/directory/service"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"github.com/wso2/identity-phonebook-service/test/setup"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	setup.UseTestConfig()
	os.Exit(m.Run())
}

type fakeService struct {
	service.DirectoryServiceInterface
	lastSearch model.SearchRequest
	lastActor  string
	lastNote   string
}

func (f *fakeService) Search(_ context.Context, request model.SearchRequest) (*model.PaginatedResult, error) {
	f.lastSearch = request
	if _, err := service.ParseDimensions(request.Dimensions); err != nil {
		return nil, err
	}
	limit := 2
	if request.Limit != nil {
		limit = *request.Limit
	}
	return &model.PaginatedResult{
		Items:      []model.EnrichedRecord{{DirectoryRecord: model.DirectoryRecord{ID: "p1", SourceKind: "person"}}},
		TotalCount: 5,
		Offset:     request.Offset,
		Limit:      limit,
		Term:       request.Term,
		ETag:       `"abc"`,
	}, nil
}

func (f *fakeService) SetMemberNote(_ context.Context, actor, username, orgUnitID, content string) (*model.MemberNote, error) {
	f.lastActor = actor
	f.lastNote = content
	return &model.MemberNote{Username: username, OrgUnitID: orgUnitID, Content: content}, nil
}

func (f *fakeService) DeletePersonalPhone(context.Context, string, string) error {
	return errors2.NewClientError(errors2.NOTHING_TO_DELETE, http.StatusNotFound)
}

type fakeProvider struct{ svc *fakeService }

func (p fakeProvider) GetDirectoryService() service.DirectoryServiceInterface { return p.svc }

func newHandler() (*DirectoryHandler, *fakeService) {
	svc := &fakeService{}
	return &DirectoryHandler{provider: fakeProvider{svc: svc}}, svc
}

func authorized(t *testing.T, r *http.Request, perm string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+setup.SignedToken(t, "u1", perm))
	return r
}

func TestSearch(t *testing.T) {
	h, svc := newHandler()
	r := authorized(t, httptest.NewRequest(http.MethodGet,
		"/api/phonebook/search/Meier?in=person_name,room&in=phone_number&offset=2&limit=2", nil), "autor")
	w := httptest.NewRecorder()

	h.Search(w, r, "Meier")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"abc"`, w.Header().Get("ETag"))
	assert.Equal(t, []string{"person_name", "room", "phone_number"}, svc.lastSearch.Dimensions)
	assert.Equal(t, 2, svc.lastSearch.Offset)
	require.NotNil(t, svc.lastSearch.Limit)
	assert.Equal(t, 2, *svc.lastSearch.Limit)

	var body struct {
		TotalCount int `json:"total_count"`
		Links      []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.TotalCount)
	rels := []string{}
	for _, link := range body.Links {
		rels = append(rels, link.Rel)
	}
	assert.Equal(t, []string{"first", "previous", "next", "last"}, rels)
}

func TestSearch_NotModified(t *testing.T) {
	h, _ := newHandler()
	r := authorized(t, httptest.NewRequest(http.MethodGet, "/api/phonebook/search/Meier?in=person_name", nil), "autor")
	r.Header.Set("If-None-Match", `"zzz", "abc"`)
	w := httptest.NewRecorder()

	h.Search(w, r, "Meier")

	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSearch_Errors(t *testing.T) {
	h, _ := newHandler()

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/api/phonebook/search/Meier?in=person_name", nil), "Meier")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.Search(w, authorized(t, httptest.NewRequest(http.MethodGet, "/api/phonebook/search/Meier", nil), "autor"), "Meier")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No search fields specified.")

	w = httptest.NewRecorder()
	h.Search(w, authorized(t, httptest.NewRequest(http.MethodGet,
		"/api/phonebook/search/Meier?in=person_name&limit=ten", nil), "autor"), "Meier")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetMemberNote(t *testing.T) {
	h, svc := newHandler()

	w := httptest.NewRecorder()
	r := authorized(t, httptest.NewRequest(http.MethodPut, "/api/phonebook/userinfo/emeier/o1",
		strings.NewReader(`{"info":"Sprechzeit Mo"}`)), "autor")
	h.SetMemberNote(w, r, "emeier", "o1")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r = authorized(t, httptest.NewRequest(http.MethodPut, "/api/phonebook/userinfo/emeier/o1",
		strings.NewReader(`{"info":"Sprechzeit Mo"}`)), "root")
	h.SetMemberNote(w, r, "emeier", "o1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", svc.lastActor)
	assert.Equal(t, "Sprechzeit Mo", svc.lastNote)
	assert.JSONEq(t, `{"username":"emeier","org_unit_id":"o1","info":"Sprechzeit Mo"}`, w.Body.String())

	w = httptest.NewRecorder()
	r = authorized(t, httptest.NewRequest(http.MethodPut, "/api/phonebook/userinfo/emeier/o1",
		strings.NewReader(`{"text":"x"}`)), "root")
	h.SetMemberNote(w, r, "emeier", "o1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePersonalPhone_NothingToDelete(t *testing.T) {
	h, _ := newHandler()
	w := httptest.NewRecorder()
	r := authorized(t, httptest.NewRequest(http.MethodDelete, "/api/phonebook/personalphone/mschulz", nil), "root")

	h.DeletePersonalPhone(w, r, "mschulz")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No content found, none deleted.")
}
