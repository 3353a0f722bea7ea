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
	"strconv"

	"github.com/wso2/identity-phonebook-service/internal/entry/model"
	"github.com/wso2/identity-phonebook-service/internal/entry/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/security"
	"github.com/wso2/identity-phonebook-service/internal/system/utils"
)

type EntryHandler struct {
	provider provider.EntryProviderInterface
}

func NewEntryHandler() *EntryHandler {

	return &EntryHandler{
		provider: provider.NewEntryProvider(),
	}
}

func entryLocation(id int64) string {
	return constants.ApiBasePath + constants.PhonebookApiPath + "/entry/" + strconv.FormatInt(id, 10)
}

func setLocation(w http.ResponseWriter, id int64) {
	w.Header().Set("Location", entryLocation(id))
	w.Header().Set("Content-Location", entryLocation(id))
}

func badBody(description string) error {
	return errors2.NewClientError(errors2.WithDescription(errors2.BAD_REQUEST, description), http.StatusBadRequest)
}

// GetEntry handles GET /phonebook/entry/{id}.
func (eh *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request, id string) {

	if _, err := security.AuthnAndAuthz(r, constants.OperationReadEntry); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	entryService := eh.provider.GetEntryService()
	entry, err := entryService.GetEntry(r.Context(), id)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, entry)
}

// GetEntryByExternalID handles GET /phonebook/entry/external/{id}.
func (eh *EntryHandler) GetEntryByExternalID(w http.ResponseWriter, r *http.Request, externalID string) {

	if _, err := security.AuthnAndAuthz(r, constants.OperationReadEntry); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	entryService := eh.provider.GetEntryService()
	entry, err := entryService.GetEntryByExternalID(r.Context(), externalID)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, entry)
}

// CreateEntry handles PUT /phonebook/entry.
func (eh *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManageEntry)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	var request model.CreateEntryRequest
	if description, ok := utils.DecodeJSONBody(r, &request, "phonebook entry"); !ok {
		utils.HandleError(w, r, badBody(description))
		return
	}

	entryService := eh.provider.GetEntryService()
	entry, err := entryService.CreateEntry(r.Context(), principal.Subject, request)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	setLocation(w, entry.ID)
	utils.WriteJSONResponse(w, http.StatusCreated, entry)
}

// UpdateEntry handles PATCH /phonebook/entry/{id}.
func (eh *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request, id string) {

	eh.update(w, r, func(actor string, request model.UpdateEntryRequest) (*model.ManualEntry, error) {
		return eh.provider.GetEntryService().UpdateEntry(r.Context(), actor, id, request)
	})
}

// UpdateEntryByExternalID handles PATCH /phonebook/entry/external/{id}.
func (eh *EntryHandler) UpdateEntryByExternalID(w http.ResponseWriter, r *http.Request, externalID string) {

	eh.update(w, r, func(actor string, request model.UpdateEntryRequest) (*model.ManualEntry, error) {
		return eh.provider.GetEntryService().UpdateEntryByExternalID(r.Context(), actor, externalID, request)
	})
}

func (eh *EntryHandler) update(w http.ResponseWriter, r *http.Request,
	apply func(actor string, request model.UpdateEntryRequest) (*model.ManualEntry, error)) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManageEntry)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	var request model.UpdateEntryRequest
	if description, ok := utils.DecodeJSONBody(r, &request, "phonebook entry"); !ok {
		utils.HandleError(w, r, badBody(description))
		return
	}
	entry, err := apply(principal.Subject, request)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	setLocation(w, entry.ID)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteEntry handles DELETE /phonebook/entry/{id}.
func (eh *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request, id string) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManageEntry)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	if err := eh.provider.GetEntryService().DeleteEntry(r.Context(), principal.Subject, id); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteEntryByExternalID handles DELETE /phonebook/entry/external/{id}.
func (eh *EntryHandler) DeleteEntryByExternalID(w http.ResponseWriter, r *http.Request, externalID string) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManageEntry)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	if err := eh.provider.GetEntryService().DeleteEntryByExternalID(r.Context(), principal.Subject, externalID); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
