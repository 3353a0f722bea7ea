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

package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/database/client"
)

// Each source has its own row shape; toRecord projects it into a DirectoryRecord.
type directoryRow interface {
	toRecord() model.DirectoryRecord
}

type personRow struct {
	id, firstName, lastName, titleFront, titleRear, username string
	gender                                                   int
	orgUnitName, roleGroup, roleGroupMale, roleGroupFemale   string
	phone, fax, room, note                                   string
}

func scanPersonRow(row map[string]interface{}) personRow {
	return personRow{
		id:              client.String(row, "id"),
		firstName:       client.String(row, "first_name"),
		lastName:        client.String(row, "last_name"),
		titleFront:      client.String(row, "title_front"),
		titleRear:       client.String(row, "title_rear"),
		username:        client.String(row, "username"),
		gender:          gender(row),
		orgUnitName:     client.String(row, "org_unit_name"),
		roleGroup:       client.String(row, "role_group"),
		roleGroupMale:   client.String(row, "role_group_male"),
		roleGroupFemale: client.String(row, "role_group_female"),
		phone:           client.String(row, "phone"),
		fax:             client.String(row, "fax"),
		room:            client.String(row, "room"),
		note:            client.String(row, "note"),
	}
}

func (r personRow) toRecord() model.DirectoryRecord {
	return model.DirectoryRecord{
		ID:              r.id,
		SourceKind:      constants.SourcePerson,
		FirstName:       r.firstName,
		LastName:        r.lastName,
		TitlePrefix:     r.titleFront,
		TitleSuffix:     r.titleRear,
		LoginHandle:     r.username,
		OrgUnitName:     r.orgUnitName,
		GenderCode:      r.gender,
		RoleGroup:       r.roleGroup,
		RoleGroupMale:   r.roleGroupMale,
		RoleGroupFemale: r.roleGroupFemale,
		Phone:           r.phone,
		Fax:             r.fax,
		Room:            r.room,
		Note:            r.note,
	}
}

type personalPhoneRow struct {
	id, firstName, lastName, titleFront, titleRear, username string
	gender                                                   int
	number                                                   string
	label                                                    string
}

func scanPersonalPhoneRow(row map[string]interface{}, label string) personalPhoneRow {
	return personalPhoneRow{
		id:         client.String(row, "id"),
		firstName:  client.String(row, "first_name"),
		lastName:   client.String(row, "last_name"),
		titleFront: client.String(row, "title_front"),
		titleRear:  client.String(row, "title_rear"),
		username:   client.String(row, "username"),
		gender:     gender(row),
		number:     client.String(row, "phone"),
		label:      label,
	}
}

func (r personalPhoneRow) toRecord() model.DirectoryRecord {
	return model.DirectoryRecord{
		ID:          r.id,
		SourceKind:  constants.SourcePerson,
		FirstName:   r.firstName,
		LastName:    r.lastName,
		TitlePrefix: r.titleFront,
		TitleSuffix: r.titleRear,
		LoginHandle: r.username,
		OrgUnitName: r.label,
		GenderCode:  r.gender,
		Phone:       r.number,
	}
}

type orgUnitRow struct {
	id, name, phone, fax string
}

func scanOrgUnitRow(row map[string]interface{}) orgUnitRow {
	return orgUnitRow{
		id:    client.String(row, "id"),
		name:  client.String(row, "name"),
		phone: client.String(row, "phone"),
		fax:   client.String(row, "fax"),
	}
}

// An org unit is listed under its own name, like a person under the last name.
func (r orgUnitRow) toRecord() model.DirectoryRecord {
	return model.DirectoryRecord{
		ID:         r.id,
		SourceKind: constants.SourceOrgUnit,
		LastName:   r.name,
		Phone:      r.phone,
		Fax:        r.fax,
	}
}

type manualEntryRow struct {
	id, name, phone, building, room, note string
	validFrom, validUntil                 *time.Time
	ownerOrgUnit                          string
	ownerFirstName, ownerLastName         string
	ownerTitleFront, ownerTitleRear       string
}

func scanManualEntryRow(row map[string]interface{}) (manualEntryRow, error) {
	validFrom, err := client.Time(row, "valid_from")
	if err != nil {
		return manualEntryRow{}, err
	}
	validUntil, err := client.Time(row, "valid_until")
	if err != nil {
		return manualEntryRow{}, err
	}
	return manualEntryRow{
		id:              client.String(row, "id"),
		name:            client.String(row, "name"),
		phone:           client.String(row, "phone"),
		building:        client.String(row, "building"),
		room:            client.String(row, "room"),
		note:            client.String(row, "note"),
		validFrom:       validFrom,
		validUntil:      validUntil,
		ownerOrgUnit:    client.String(row, "owner_org_unit"),
		ownerFirstName:  client.String(row, "owner_first_name"),
		ownerLastName:   client.String(row, "owner_last_name"),
		ownerTitleFront: client.String(row, "owner_title_front"),
		ownerTitleRear:  client.String(row, "owner_title_rear"),
	}, nil
}

// ownerName is the owning org unit's name, or the owning person's full name
// with titles, e.g. "Dr. Erika Mustermann, M.A.".
func (r manualEntryRow) ownerName() string {
	if r.ownerOrgUnit != "" {
		return r.ownerOrgUnit
	}
	var parts []string
	for _, p := range []string{r.ownerTitleFront, r.ownerFirstName, r.ownerLastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	name := strings.Join(parts, " ")
	if r.ownerTitleRear != "" && name != "" {
		name += ", " + r.ownerTitleRear
	}
	return name
}

func (r manualEntryRow) toRecord() model.DirectoryRecord {
	return model.DirectoryRecord{
		ID:          r.id,
		SourceKind:  constants.SourceManualEntry,
		LastName:    r.name,
		OrgUnitName: r.ownerName(),
		Phone:       r.phone,
		Building:    r.building,
		Room:        r.room,
		Note:        r.note,
		ValidFrom:   r.validFrom,
		ValidUntil:  r.validUntil,
	}
}

func gender(row map[string]interface{}) int {
	if row["gender"] == nil {
		return 0
	}
	g, err := client.Int64(row, "gender")
	if err != nil {
		return 0
	}
	return int(g)
}

// recordKey identifies a record by its full content, so that rows reached
// through more than one join path collapse into one.
func recordKey(r model.DirectoryRecord) string {
	formatTime := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339Nano)
	}
	return strings.Join([]string{
		r.SourceKind, r.ID, r.FirstName, r.LastName, r.TitlePrefix, r.TitleSuffix, r.LoginHandle, r.OrgUnitName,
		strconv.Itoa(r.GenderCode), r.RoleGroup, r.RoleGroupMale, r.RoleGroupFemale, r.Phone, r.Fax,
		r.Building, r.Room, r.Note, formatTime(r.ValidFrom), formatTime(r.ValidUntil),
	}, "\x00")
}
