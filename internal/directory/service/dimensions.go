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

package service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
)

var knownDimensions = map[string]model.Dimension{
	constants.DimensionPersonName:        model.PersonName,
	constants.DimensionPhoneNumber:       model.PhoneNumber,
	constants.DimensionOrgUnitName:       model.OrgUnitName,
	constants.DimensionRoom:              model.Room,
	constants.DimensionOrgUnitLeadership: model.OrgUnitLeadership,
}

// ParseDimensions validates wire dimension names, mapping legacy aliases and
// dropping repeats. An empty list is rejected: a search without dimensions
// never silently returns everything.
func ParseDimensions(raw []string) ([]model.Dimension, error) {

	var dimensions []model.Dimension
	seen := map[model.Dimension]bool{}
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if alias, ok := constants.LegacyDimensionAliases[name]; ok {
			name = alias
		}
		dimension, ok := knownDimensions[name]
		if !ok {
			return nil, errors2.NewClientError(errors2.WithDescription(errors2.INVALID_SEARCH_FIELD,
				fmt.Sprintf("Unknown search field %q.", name)), http.StatusBadRequest)
		}
		if !seen[dimension] {
			seen[dimension] = true
			dimensions = append(dimensions, dimension)
		}
	}
	if len(dimensions) == 0 {
		return nil, errors2.NewClientError(errors2.NO_SEARCH_FIELDS, http.StatusBadRequest)
	}
	return dimensions, nil
}
