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
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/directory/query"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"github.com/wso2/identity-phonebook-service/test/setup"
)

const personalPhoneLabel = "Persönliche Telefonnummer"

var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func newSeededStore(t *testing.T) (DirectoryStoreInterface, *sql.DB) {
	db := setup.SetupSQLite(t)
	require.NoError(t, setup.SeedDirectory(context.Background(), db))
	return NewDirectoryStore(personalPhoneLabel), db
}

func params(term string) query.Params {
	return query.Params{
		Term:             term,
		VisibleStates:    []string{"yes", "always"},
		LeadershipGroups: []string{"Leitung"},
		AsOf:             now,
	}
}

func search(t *testing.T, s DirectoryStoreInterface, term string, dims ...model.Dimension) []model.DirectoryRecord {
	records, err := s.Search(context.Background(), query.Compose(dims, []string{"Leitung"}), params(term))
	require.NoError(t, err)
	return records
}

func insertEntry(t *testing.T, db *sql.DB, name, ownerKind, ownerID string, from, until *time.Time) {
	_, err := db.Exec(`INSERT INTO phonebook_entry (name, owner_kind, owner_id, phone, creator, created_at, updated_at,
		valid_from, valid_until) VALUES (?, ?, ?, '0441-999', 'admin', ?, ?, ?, ?)`,
		name, ownerKind, ownerID, now, now, nullable(from), nullable(until))
	require.NoError(t, err)
}

func nullable(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func TestSearch_PersonName(t *testing.T) {
	s, _ := newSeededStore(t)

	records := search(t, s, "meier", model.PersonName)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "p1", r.ID)
	assert.Equal(t, constants.SourcePerson, r.SourceKind)
	assert.Equal(t, "Erika", r.FirstName)
	assert.Equal(t, "Dr.", r.TitlePrefix)
	assert.Equal(t, "emeier", r.LoginHandle)
	assert.Equal(t, "Institut für Informatik", r.OrgUnitName)
	assert.Equal(t, "Leitung", r.RoleGroup)
	assert.Equal(t, "Leiterin", r.RoleGroupFemale)
	assert.Equal(t, "0441-111", r.Phone)
	assert.Equal(t, 2, r.GenderCode)
}

func TestSearch_FullNameInEitherOrder(t *testing.T) {
	s, _ := newSeededStore(t)

	assert.Len(t, search(t, s, "Erika Meier", model.PersonName), 1)
	assert.Len(t, search(t, s, "Meier Erika", model.PersonName), 1)
}

func TestSearch_HiddenPersonExcluded(t *testing.T) {
	s, _ := newSeededStore(t)

	assert.Empty(t, search(t, s, "Versteckt", model.PersonName))
}

func TestSearch_PersonalPhone(t *testing.T) {
	s, _ := newSeededStore(t)

	records := search(t, s, "0151", model.PhoneNumber)
	require.Len(t, records, 1)
	assert.Equal(t, "p2", records[0].ID)
	assert.Equal(t, personalPhoneLabel, records[0].OrgUnitName)
	assert.Equal(t, "0151-555", records[0].Phone)

	records = search(t, s, "Schulz", model.PersonName)
	require.Len(t, records, 2)
	assert.ElementsMatch(t, []string{"Institut für Informatik", personalPhoneLabel},
		[]string{records[0].OrgUnitName, records[1].OrgUnitName})
}

func TestSearch_Room(t *testing.T) {
	s, _ := newSeededStore(t)

	records := search(t, s, "A1-10", model.Room)
	assert.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, constants.SourcePerson, r.SourceKind)
		assert.NotEqual(t, "p3", r.ID)
	}
}

func TestSearch_OrgUnitWithoutPhoneExcluded(t *testing.T) {
	s, _ := newSeededStore(t)

	records := search(t, s, "Raum", model.OrgUnitName)
	require.Len(t, records, 1)
	assert.Equal(t, "o3", records[0].ID)
	assert.Equal(t, constants.SourceOrgUnit, records[0].SourceKind)
	assert.Equal(t, "Raum 2 Bibliothek", records[0].LastName)
}

func TestSearch_Leadership(t *testing.T) {
	s, _ := newSeededStore(t)

	records := search(t, s, "Meier", model.OrgUnitLeadership)
	kinds := map[string]int{}
	for _, r := range records {
		kinds[r.SourceKind]++
	}
	assert.Equal(t, map[string]int{constants.SourcePerson: 3, constants.SourceOrgUnit: 1}, kinds)

	assert.Empty(t, search(t, s, "Schulz", model.OrgUnitLeadership))
}

func TestSearch_Leadership_ManualEntryOwnedByLedOrgUnit(t *testing.T) {
	s, db := newSeededStore(t)
	insertEntry(t, db, "Sekretariat Informatik", constants.SourceOrgUnit, "o1", nil, nil)
	insertEntry(t, db, "Namensgleiche Person", constants.SourcePerson, "o1", nil, nil)

	var manual []string
	for _, r := range search(t, s, "Meier", model.OrgUnitLeadership) {
		if r.SourceKind == constants.SourceManualEntry {
			manual = append(manual, r.LastName)
		}
	}
	assert.Equal(t, []string{"Sekretariat Informatik"}, manual)
}

func TestSearch_MemberNote(t *testing.T) {
	s, _ := newSeededStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertMemberNote(ctx, "p1", "o1", "Sprechzeit Mo 10-12"))
	require.NoError(t, s.UpsertMemberNote(ctx, "p1", "o1", "Sprechzeit Di 10-12"))

	records := search(t, s, "emeier", model.PersonName)
	require.Len(t, records, 1)
	assert.Equal(t, "Sprechzeit Di 10-12", records[0].Note)

	deleted, err := s.DeleteMemberNote(ctx, "p1", "o1")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteMemberNote(ctx, "p1", "o1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSearch_ManualEntries_Validity(t *testing.T) {
	s, db := newSeededStore(t)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	insertEntry(t, db, "Pforte Nord", constants.SourceOrgUnit, "o1", nil, nil)
	insertEntry(t, db, "Pforte Alt", "", "", nil, &yesterday)
	insertEntry(t, db, "Pforte Neu", "", "", &tomorrow, nil)
	insertEntry(t, db, "Pforte Sekretariat", constants.SourcePerson, "p1", &yesterday, &tomorrow)

	records := search(t, s, "Pforte", model.PersonName)
	require.Len(t, records, 2)
	byName := map[string]model.DirectoryRecord{}
	for _, r := range records {
		assert.Equal(t, constants.SourceManualEntry, r.SourceKind)
		byName[r.LastName] = r
	}
	assert.Equal(t, "Institut für Informatik", byName["Pforte Nord"].OrgUnitName)
	assert.Equal(t, "Dr. Erika Meier", byName["Pforte Sekretariat"].OrgUnitName)
	require.NotNil(t, byName["Pforte Sekretariat"].ValidFrom)
	assert.True(t, yesterday.Equal(*byName["Pforte Sekretariat"].ValidFrom))
}

func TestSearch_ManualEntryOwnerName(t *testing.T) {
	s, db := newSeededStore(t)
	insertEntry(t, db, "Sekretariat", constants.SourceOrgUnit, "o1", nil, nil)

	records := search(t, s, "Informatik", model.OrgUnitName)
	var manual []model.DirectoryRecord
	for _, r := range records {
		if r.SourceKind == constants.SourceManualEntry {
			manual = append(manual, r)
		}
	}
	require.Len(t, manual, 1)
	assert.Equal(t, "Sekretariat", manual[0].LastName)
}

func TestFindRangeCandidates(t *testing.T) {
	s, _ := newSeededStore(t)

	persons, orgUnits, err := s.FindRangeCandidates(context.Background(), params("Raum"))
	require.NoError(t, err)
	assert.Empty(t, persons)
	assert.Len(t, orgUnits, 2)

	persons, _, err = s.FindRangeCandidates(context.Background(), params("schulz"))
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "M.Sc.", persons[0].TitleSuffix)
}

func TestPersonLookups(t *testing.T) {
	s, _ := newSeededStore(t)
	ctx := context.Background()

	person, err := s.GetPersonByUsername(ctx, "emeier")
	require.NoError(t, err)
	require.NotNil(t, person)
	assert.Equal(t, "p1", person.ID)

	person, err = s.GetPersonByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, person)

	person, err = s.GetPersonByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "mschulz", person.Username)

	orgUnit, err := s.GetOrgUnitByID(ctx, "o3")
	require.NoError(t, err)
	assert.Equal(t, "Raum 2 Bibliothek", orgUnit.Name)

	member, err := s.IsMember(ctx, "p1", "o1")
	require.NoError(t, err)
	assert.True(t, member)
	member, err = s.IsMember(ctx, "p1", "o3")
	require.NoError(t, err)
	assert.False(t, member)
}

func TestPersonalPhoneUpsertAndDelete(t *testing.T) {
	s, _ := newSeededStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPersonalPhone(ctx, "p1", "0160-111"))
	records := search(t, s, "0160", model.PhoneNumber)
	require.Len(t, records, 1)
	assert.Equal(t, "p1", records[0].ID)

	deleted, err := s.DeletePersonalPhone(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, search(t, s, "0160", model.PhoneNumber))

	deleted, err = s.DeletePersonalPhone(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, deleted)
}
