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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/entry/service"
	"github.com/wso2/identity-phonebook-service/internal/entry/store"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"github.com/wso2/identity-phonebook-service/test/setup"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	setup.UseTestConfig()
	os.Exit(m.Run())
}

type sqliteProvider struct{}

func (sqliteProvider) GetEntryService() service.EntryServiceInterface {
	return service.NewEntryService(store.NewEntryStore(), "+49(0)851/509-", "Europe/Berlin", time.Now)
}

func newHandler(t *testing.T) *EntryHandler {
	db := setup.SetupSQLite(t)
	require.NoError(t, setup.SeedDirectory(context.Background(), db))
	return &EntryHandler{provider: sqliteProvider{}}
}

func call(t *testing.T, method, target, body, perm string, serve func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+setup.SignedToken(t, "p1", perm))
	w := httptest.NewRecorder()
	serve(w, r)
	return w
}

func TestEntryLifecycle(t *testing.T) {
	h := newHandler(t)

	w := call(t, http.MethodPut, "/api/phonebook/entry",
		`{"name":"Front Desk","phone":"123","owner_ref":"o1","building":"Hauptgebäude","external_id":"desk-1"}`,
		"root", h.CreateEntry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID        int64     `json:"id"`
		Phone     string    `json:"phone"`
		Creator   string    `json:"creator"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
		Owner     struct {
			Kind string `json:"kind"`
			ID   string `json:"id"`
		} `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Positive(t, created.ID)
	assert.Equal(t, "+49(0)851/509-123", created.Phone)
	assert.Equal(t, "p1", created.Creator)
	assert.Equal(t, "orgUnit", created.Owner.Kind)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/api/phonebook/entry/"))
	assert.Equal(t, location, w.Header().Get("Content-Location"))
	id := strings.TrimPrefix(location, "/api/phonebook/entry/")

	w = call(t, http.MethodGet, location, "", "autor", func(w http.ResponseWriter, r *http.Request) { h.GetEntry(w, r, id) })
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"building":"Hauptgebäude"`)

	w = call(t, http.MethodPatch, location, `{"building":"","valid_from":"2025-01-01","room":"A1"}`, "root",
		func(w http.ResponseWriter, r *http.Request) { h.UpdateEntry(w, r, id) })
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Equal(t, location, w.Header().Get("Location"))

	w = call(t, http.MethodGet, "/api/phonebook/entry/external/desk-1", "", "autor",
		func(w http.ResponseWriter, r *http.Request) { h.GetEntryByExternalID(w, r, "desk-1") })
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"building":"Hauptgebäude"`)
	assert.Contains(t, w.Body.String(), `"room":"A1"`)
	assert.Contains(t, w.Body.String(), `"valid_from":"2024-12-31T23:00:00Z"`)

	w = call(t, http.MethodPatch, "/api/phonebook/entry/external/desk-1", `{"name":"  "}`, "root",
		func(w http.ResponseWriter, r *http.Request) { h.UpdateEntryByExternalID(w, r, "desk-1") })
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = call(t, http.MethodDelete, "/api/phonebook/entry/external/desk-1", "", "root",
		func(w http.ResponseWriter, r *http.Request) { h.DeleteEntryByExternalID(w, r, "desk-1") })
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = call(t, http.MethodDelete, location, "", "root", func(w http.ResponseWriter, r *http.Request) { h.DeleteEntry(w, r, id) })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Entry with the given ID not found.")
}

func TestCreateEntry_Errors(t *testing.T) {
	h := newHandler(t)

	w := call(t, http.MethodPut, "/api/phonebook/entry", `{"name":"Front Desk","phone":"123"}`, "autor", h.CreateEntry)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, http.MethodPut, "/api/phonebook/entry", `{"name":"","phone":"123"}`, "root", h.CreateEntry)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name and phone number are required.")

	w = call(t, http.MethodPut, "/api/phonebook/entry", `{"name":"Front Desk","phone":"123","colour":"red"}`, "root", h.CreateEntry)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, http.MethodPut, "/api/phonebook/entry", `{"name":"A","phone":"1","external_id":"x"}`, "root", h.CreateEntry)
	require.Equal(t, http.StatusCreated, w.Code)
	w = call(t, http.MethodPut, "/api/phonebook/entry", `{"name":"B","phone":"2","external_id":"x"}`, "root", h.CreateEntry)
	assert.Equal(t, http.StatusConflict, w.Code)
}
