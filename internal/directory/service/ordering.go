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
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortRecords orders records by last name, first name, login handle, org unit,
// role group and phone under a case-insensitive German collation. The
// remaining fields break ties byte-wise so the order is total.
func sortRecords(records []model.EnrichedRecord) {

	// A Collator is not safe for concurrent use; each call gets its own.
	col := collate.New(language.German, collate.IgnoreCase)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		for _, pair := range [][2]string{
			{a.LastName, b.LastName},
			{a.FirstName, b.FirstName},
			{a.LoginHandle, b.LoginHandle},
			{a.OrgUnitName, b.OrgUnitName},
			{a.RoleGroup, b.RoleGroup},
			{a.Phone, b.Phone},
		} {
			if c := col.CompareString(pair[0], pair[1]); c != 0 {
				return c < 0
			}
		}
		return tieBreakKey(a) < tieBreakKey(b)
	})
}

func tieBreakKey(r model.EnrichedRecord) string {
	formatTime := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339Nano)
	}
	return strings.Join([]string{
		r.LastName, r.FirstName, r.LoginHandle, r.OrgUnitName, r.RoleGroup, r.Phone,
		r.SourceKind, r.ID, r.TitlePrefix, r.TitleSuffix, strconv.Itoa(r.GenderCode), r.RoleGroupMale,
		r.RoleGroupFemale, r.Fax, r.Building, r.Room, r.Note, formatTime(r.ValidFrom), formatTime(r.ValidUntil),
	}, "\x00")
}

// fingerprint is the strong ETag of a sorted result set.
func fingerprint(records []model.EnrichedRecord) (string, error) {

	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	sum := xxh3.Hash128(data)
	return fmt.Sprintf(`"%016x%016x"`, sum.Hi, sum.Lo), nil
}

// sortRanges orders ranges case-insensitively with numbers compared by value,
// so "Raum 2" precedes "Raum 10". Ids break ties.
func sortRanges(ranges []model.Range) {

	col := collate.New(language.German, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(ranges, func(i, j int) bool {
		if c := col.CompareString(ranges[i].DisplayName, ranges[j].DisplayName); c != 0 {
			return c < 0
		}
		return ranges[i].ID < ranges[j].ID
	})
}

// personDisplayName renders "Last, First, titles (username)" leaving out blank parts.
func personDisplayName(p model.Person) string {

	var parts []string
	for _, part := range []string{p.LastName, p.FirstName, p.TitlePrefix, p.TitleSuffix} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ") + " (" + p.Username + ")"
}
