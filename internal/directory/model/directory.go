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

package model

import (
	"time"

	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/pagination"
)

// Dimension is a search facet a caller can select.
type Dimension string

const (
	PersonName        Dimension = constants.DimensionPersonName
	PhoneNumber       Dimension = constants.DimensionPhoneNumber
	OrgUnitName       Dimension = constants.DimensionOrgUnitName
	Room              Dimension = constants.DimensionRoom
	OrgUnitLeadership Dimension = constants.DimensionOrgUnitLeadership
)

// DirectoryRecord is the row shape every data source projects into.
type DirectoryRecord struct {
	ID              string     `json:"id"`
	SourceKind      string     `json:"source_kind"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	TitlePrefix     string     `json:"title_prefix"`
	TitleSuffix     string     `json:"title_suffix"`
	LoginHandle     string     `json:"login_handle"`
	OrgUnitName     string     `json:"org_unit_name"`
	GenderCode      int        `json:"gender_code"`
	RoleGroup       string     `json:"role_group"`
	RoleGroupMale   string     `json:"role_group_male"`
	RoleGroupFemale string     `json:"role_group_female"`
	Phone           string     `json:"phone"`
	Fax             string     `json:"fax"`
	Building        string     `json:"building"`
	Room            string     `json:"room"`
	Note            string     `json:"note"`
	ValidFrom       *time.Time `json:"valid_from,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
}

// EnrichedRecord is a DirectoryRecord decorated for presentation.
type EnrichedRecord struct {
	DirectoryRecord
	PictureRef      *string `json:"picture_ref"`
	IsCustomPicture bool    `json:"is_custom_picture"`
	ProfileLink     string  `json:"profile_link"`
}

// SearchRequest is a search as received from a caller. Dimensions holds the
// wire names and is validated by the search service.
type SearchRequest struct {
	Term       string
	Dimensions []string
	Offset     int
	// Limit is nil when the caller did not ask for a page size.
	Limit *int
}

// PaginatedResult is the search response envelope.
type PaginatedResult struct {
	Items             []EnrichedRecord  `json:"items"`
	TotalCount        int               `json:"total_count"`
	Offset            int               `json:"offset"`
	Limit             int               `json:"limit"`
	Term              string            `json:"term"`
	AppliedDimensions []Dimension       `json:"applied_dimensions"`
	Links             []pagination.Link `json:"links,omitempty"`
	ETag              string            `json:"-"`
}

// Range is a candidate owner of a manual entry.
type Range struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Kind        string `json:"kind"`
}

// Person is the subset of a person's account the phonebook needs.
type Person struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TitlePrefix string `json:"title_prefix"`
	TitleSuffix string `json:"title_suffix"`
}

// OrgUnit is the subset of an org unit the phonebook needs.
type OrgUnit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MemberNote is free text attached to a person's membership in an org unit.
type MemberNote struct {
	Username  string `json:"username"`
	OrgUnitID string `json:"org_unit_id"`
	Content   string `json:"info"`
}

// MemberNoteRequest is the body of a member note update.
type MemberNoteRequest struct {
	Content string `json:"info"`
}

// PersonalPhone is a person's personal phone number.
type PersonalPhone struct {
	Username string `json:"username"`
	Number   string `json:"number"`
}

// PersonalPhoneRequest is the body of a personal phone update.
type PersonalPhoneRequest struct {
	Number string `json:"number"`
}
