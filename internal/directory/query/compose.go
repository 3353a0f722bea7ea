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

package query

import (
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
)

func personNamePredicates(alias string) []Predicate {
	return []Predicate{
		Like(alias + ".first_name"),
		Like(alias + ".last_name"),
		LikeConcat(alias+".first_name", alias+".last_name"),
		LikeConcat(alias+".last_name", alias+".first_name"),
		Like(alias + ".username"),
	}
}

func personBranch() Branch {
	return Branch{
		Source: SourcePerson,
		Projection: []string{
			"a.person_id AS id", "a.first_name", "a.last_name", "a.title_front", "a.title_rear", "a.username",
			"a.gender", "o.name AS org_unit_name", "g.name AS role_group", "g.name_male AS role_group_male",
			"g.name_female AS role_group_female", "m.phone", "m.fax", "m.room", "COALESCE(n.content, '') AS note",
		},
		From: "person a",
		Joins: []string{
			"JOIN org_unit_member m ON m.person_id = a.person_id",
			"JOIN org_unit o ON o.org_unit_id = m.org_unit_id",
			"JOIN role_group_member gm ON gm.person_id = a.person_id",
			"JOIN role_group g ON g.role_group_id = gm.role_group_id AND g.org_unit_id = o.org_unit_id",
			"LEFT JOIN member_note n ON n.person_id = a.person_id AND n.org_unit_id = o.org_unit_id",
		},
		Filters: []Predicate{InVisibility("a.visible"), NotEmpty("m.phone")},
	}
}

func personalPhoneBranch() Branch {
	return Branch{
		Source: SourcePersonalPhone,
		Projection: []string{
			"a.person_id AS id", "a.first_name", "a.last_name", "a.title_front", "a.title_rear", "a.username",
			"a.gender", "pp.number AS phone",
		},
		From: "person a",
		Joins: []string{
			"JOIN personal_phone pp ON pp.person_id = a.person_id",
			"LEFT JOIN org_unit_member m ON m.person_id = a.person_id",
			"LEFT JOIN org_unit o ON o.org_unit_id = m.org_unit_id",
		},
		Filters: []Predicate{InVisibility("a.visible"), NotEmpty("pp.number")},
	}
}

func orgUnitBranch() Branch {
	return Branch{
		Source:     SourceOrgUnit,
		Projection: []string{"o.org_unit_id AS id", "o.name", "o.phone", "o.fax"},
		From:       "org_unit o",
		Filters:    []Predicate{NotEmpty("o.phone")},
	}
}

func manualEntryBranch() Branch {
	return Branch{
		Source: SourceManualEntry,
		Projection: []string{
			"p.entry_id AS id", "p.name", "p.phone", "p.building", "p.room", "p.note", "p.valid_from",
			"p.valid_until", "ow.name AS owner_org_unit", "oa.first_name AS owner_first_name",
			"oa.last_name AS owner_last_name", "oa.title_front AS owner_title_front",
			"oa.title_rear AS owner_title_rear",
		},
		From: "phonebook_entry p",
		Joins: []string{
			"LEFT JOIN org_unit ow ON p.owner_kind = '" + constants.SourceOrgUnit + "' AND ow.org_unit_id = p.owner_id",
			"LEFT JOIN person oa ON p.owner_kind = '" + constants.SourcePerson + "' AND oa.person_id = p.owner_id",
		},
		Filters: []Predicate{Active("p.valid_from", "p.valid_until")},
	}
}

// Compose builds the search plan for the requested dimensions. Each requested
// dimension OR-appends its predicates to every branch it applies to; a branch
// left without predicates is not part of the plan. The leadership dimension
// contributes nothing when no leadership groups are configured.
func Compose(dimensions []model.Dimension, leadershipGroups []string) Plan {

	person := personBranch()
	personalPhone := personalPhoneBranch()
	orgUnit := orgUnitBranch()
	manualEntry := manualEntryBranch()

	for _, dimension := range dimensions {
		switch dimension {
		case model.PersonName:
			person.Match(personNamePredicates("a")...)
			personalPhone.Match(personNamePredicates("a")...)
			orgUnit.Match(Like("o.name"))
			manualEntry.Match(Like("p.name"))
			manualEntry.Match(personNamePredicates("oa")...)
		case model.PhoneNumber:
			person.Match(Like("m.phone"), Like("m.fax"))
			personalPhone.Match(Like("pp.number"))
			orgUnit.Match(Like("o.phone"), Like("o.fax"))
			manualEntry.Match(Like("p.phone"))
		case model.OrgUnitName:
			person.Match(Like("o.name"))
			personalPhone.Match(Like("o.name"))
			orgUnit.Match(Like("o.name"))
			manualEntry.Match(Like("p.name"), Like("ow.name"))
		case model.Room:
			person.Match(Like("m.room"))
			personalPhone.Match(Like("m.room"))
			manualEntry.Match(Like("p.room"))
		case model.OrgUnitLeadership:
			if len(leadershipGroups) == 0 {
				continue
			}
			person.Match(InLeadership("o.org_unit_id"))
			personalPhone.Match(InLeadership("m.org_unit_id"))
			orgUnit.Match(InLeadership("o.org_unit_id"))
			// ow is only joined for org unit owners.
			manualEntry.Match(InLeadership("ow.org_unit_id"))
		}
	}

	var plan Plan
	for _, branch := range []Branch{person, personalPhone, orgUnit, manualEntry} {
		if len(branch.Predicates) > 0 {
			plan.Branches = append(plan.Branches, branch)
		}
	}
	return plan
}

// RangePlan builds the plan for owner candidates: visible persons matched by
// name or username and org units matched by name.
func RangePlan() Plan {

	person := Branch{
		Source:     SourceRangePerson,
		Projection: []string{"a.person_id AS id", "a.username", "a.first_name", "a.last_name", "a.title_front", "a.title_rear"},
		From:       "person a",
		Filters:    []Predicate{InVisibility("a.visible")},
	}
	person.Match(personNamePredicates("a")...)

	orgUnit := Branch{
		Source:     SourceRangeOrgUnit,
		Projection: []string{"o.org_unit_id AS id", "o.name"},
		From:       "org_unit o",
	}
	orgUnit.Match(Like("o.name"))

	return Plan{Branches: []Branch{person, orgUnit}}
}
