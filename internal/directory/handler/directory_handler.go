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

package handler

import (
	"net/http"
	"strings"

	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/directory/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/pagination"
	"github.com/wso2/identity-phonebook-service/internal/system/security"
	"github.com/wso2/identity-phonebook-service/internal/system/utils"
)

type DirectoryHandler struct {
	provider provider.DirectoryProviderInterface
}

func NewDirectoryHandler() *DirectoryHandler {

	return &DirectoryHandler{
		provider: provider.NewDirectoryProvider(),
	}
}

func paging(r *http.Request) (int, *int, error) {

	offset, err := pagination.ParseOffset(r)
	if err != nil {
		return 0, nil, errors2.NewClientError(errors2.WithDescription(errors2.INVALID_PAGINATION, err.Error()),
			http.StatusBadRequest)
	}
	limit, err := pagination.ParseLimit(r)
	if err != nil {
		return 0, nil, errors2.NewClientError(errors2.WithDescription(errors2.INVALID_PAGINATION, err.Error()),
			http.StatusBadRequest)
	}
	return offset, limit, nil
}

// Search handles GET /phonebook/search/{term}.
func (dh *DirectoryHandler) Search(w http.ResponseWriter, r *http.Request, term string) {

	if _, err := security.AuthnAndAuthz(r, constants.OperationSearch); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	offset, limit, err := paging(r)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	var dimensions []string
	for _, raw := range r.URL.Query()["in"] {
		dimensions = append(dimensions, utils.SplitCSV(raw)...)
	}

	directoryService := dh.provider.GetDirectoryService()
	result, err := directoryService.Search(r.Context(), model.SearchRequest{
		Term:       term,
		Dimensions: dimensions,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	writePage(w, r, result)
}

// SearchAll handles GET /phonebook/all.
func (dh *DirectoryHandler) SearchAll(w http.ResponseWriter, r *http.Request) {

	if _, err := security.AuthnAndAuthz(r, constants.OperationSearch); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	offset, limit, err := paging(r)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	directoryService := dh.provider.GetDirectoryService()
	result, err := directoryService.SearchAll(r.Context(), offset, limit)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	writePage(w, r, result)
}

// writePage answers 304 when the caller already holds the current result set.
func writePage(w http.ResponseWriter, r *http.Request, result *model.PaginatedResult) {

	w.Header().Set("ETag", result.ETag)
	if etagMatches(r.Header.Get("If-None-Match"), result.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	result.Links = pagination.Links(r.URL, result.Offset, result.Limit, result.TotalCount)
	utils.WriteJSONResponse(w, http.StatusOK, result)
}

func etagMatches(header, etag string) bool {

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || (candidate != "" && candidate == etag) {
			return true
		}
	}
	return false
}

// GetRanges handles GET /phonebook/ranges/{term}.
func (dh *DirectoryHandler) GetRanges(w http.ResponseWriter, r *http.Request, term string) {

	if _, err := security.AuthnAndAuthz(r, constants.OperationSearch); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	directoryService := dh.provider.GetDirectoryService()
	ranges, err := directoryService.FindRanges(r.Context(), term)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, ranges)
}

// SetMemberNote handles PUT /phonebook/userinfo/{person}/{orgUnit}.
func (dh *DirectoryHandler) SetMemberNote(w http.ResponseWriter, r *http.Request, username, orgUnitID string) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManagePerson)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	var request model.MemberNoteRequest
	if description, ok := utils.DecodeJSONBody(r, &request, "member note"); !ok {
		utils.HandleError(w, r, errors2.NewClientError(errors2.WithDescription(errors2.BAD_REQUEST, description),
			http.StatusBadRequest))
		return
	}

	directoryService := dh.provider.GetDirectoryService()
	note, err := directoryService.SetMemberNote(r.Context(), principal.Subject, username, orgUnitID, request.Content)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, note)
}

// DeleteMemberNote handles DELETE /phonebook/userinfo/{person}/{orgUnit}.
func (dh *DirectoryHandler) DeleteMemberNote(w http.ResponseWriter, r *http.Request, username, orgUnitID string) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManagePerson)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	directoryService := dh.provider.GetDirectoryService()
	if err := directoryService.DeleteMemberNote(r.Context(), principal.Subject, username, orgUnitID); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPersonalPhone handles PUT /phonebook/personalphone/{person}.
func (dh *DirectoryHandler) SetPersonalPhone(w http.ResponseWriter, r *http.Request, username string) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManagePerson)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	var request model.PersonalPhoneRequest
	if description, ok := utils.DecodeJSONBody(r, &request, "personal phone"); !ok {
		utils.HandleError(w, r, errors2.NewClientError(errors2.WithDescription(errors2.BAD_REQUEST, description),
			http.StatusBadRequest))
		return
	}

	directoryService := dh.provider.GetDirectoryService()
	phone, err := directoryService.SetPersonalPhone(r.Context(), principal.Subject, username, request.Number)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, phone)
}

// DeletePersonalPhone handles DELETE /phonebook/personalphone/{person}.
func (dh *DirectoryHandler) DeletePersonalPhone(w http.ResponseWriter, r *http.Request, username string) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManagePerson)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	directoryService := dh.provider.GetDirectoryService()
	if err := directoryService.DeletePersonalPhone(r.Context(), principal.Subject, username); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
