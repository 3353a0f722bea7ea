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

	"github.com/wso2/identity-phonebook-service/internal/leadership/model"
	"github.com/wso2/identity-phonebook-service/internal/leadership/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	pcontext "github.com/wso2/identity-phonebook-service/internal/system/context"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"github.com/wso2/identity-phonebook-service/internal/system/security"
	"github.com/wso2/identity-phonebook-service/internal/system/utils"
)

type LeadershipHandler struct {
	provider provider.LeadershipProviderInterface
}

func NewLeadershipHandler() *LeadershipHandler {

	return &LeadershipHandler{
		provider: provider.NewLeadershipProvider(),
	}
}

// GetConfig handles GET /phonebook/config/leadership-groups.
func (lh *LeadershipHandler) GetConfig(w http.ResponseWriter, r *http.Request) {

	if _, err := security.AuthnAndAuthz(r, constants.OperationReadConfig); err != nil {
		utils.HandleError(w, r, err)
		return
	}
	leadershipService := lh.provider.GetLeadershipService()
	leadershipConfig, err := leadershipService.GetConfig(r.Context())
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, leadershipConfig)
}

// UpdateConfig handles PUT /phonebook/config/leadership-groups.
func (lh *LeadershipHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {

	principal, err := security.AuthnAndAuthz(r, constants.OperationManageConfig)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	var update model.LeadershipConfigUpdate
	if description, ok := utils.DecodeJSONBody(r, &update, "leadership configuration"); !ok {
		utils.HandleError(w, r, errors2.NewClientError(errors2.WithDescription(errors2.BAD_REQUEST, description),
			http.StatusBadRequest))
		return
	}

	leadershipService := lh.provider.GetLeadershipService()
	leadershipConfig, err := leadershipService.UpdateGroups(r.Context(), update.Groups)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	log.GetLogger().WithContext(r.Context()).Audit(log.AuditEvent{
		InitiatorID:   principal.Subject,
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      constants.ConfigLeadershipGroups,
		TargetType:    log.TargetTypeLeadershipConfig,
		ActionID:      log.ActionUpdateLeadershipGroups,
		TraceID:       pcontext.GetTraceID(r.Context()),
		Data:          leadershipConfig.Groups,
	})
	utils.WriteJSONResponse(w, http.StatusOK, leadershipConfig)
}
