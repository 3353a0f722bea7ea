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

package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/directory/query"
	"github.com/wso2/identity-phonebook-service/internal/system/database/client"
	"github.com/wso2/identity-phonebook-service/internal/system/database/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/database/scripts"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// DirectoryStoreInterface reads the person, org unit and manual entry sources
// and writes the person data the phonebook owns.
type DirectoryStoreInterface interface {
	Search(ctx context.Context, plan query.Plan, params query.Params) ([]model.DirectoryRecord, error)
	FindRangeCandidates(ctx context.Context, params query.Params) ([]model.Person, []model.OrgUnit, error)
	GetPersonByUsername(ctx context.Context, username string) (*model.Person, error)
	GetPersonByID(ctx context.Context, personID string) (*model.Person, error)
	GetOrgUnitByID(ctx context.Context, orgUnitID string) (*model.OrgUnit, error)
	IsMember(ctx context.Context, personID, orgUnitID string) (bool, error)
	UpsertMemberNote(ctx context.Context, personID, orgUnitID, content string) error
	DeleteMemberNote(ctx context.Context, personID, orgUnitID string) (bool, error)
	UpsertPersonalPhone(ctx context.Context, personID, number string) error
	DeletePersonalPhone(ctx context.Context, personID string) (bool, error)
}

// DirectoryStore is the database backed DirectoryStoreInterface.
type DirectoryStore struct {
	personalPhoneLabel string
}

// NewDirectoryStore creates a store that labels personal phone records with the given org unit name.
func NewDirectoryStore(personalPhoneLabel string) DirectoryStoreInterface {
	return &DirectoryStore{personalPhoneLabel: personalPhoneLabel}
}

func dbClient(errorMessage errors2.ErrorMessage) (client.DBClientInterface, string, error) {

	dbProvider := provider.NewDBProvider()
	dbClient, err := dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client"
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, "", errors2.NewServerError(errors2.WithDescription(errorMessage, errorMsg), err)
	}
	return dbClient, dbProvider.GetDBType(), nil
}

// Search runs every branch of the plan and concatenates the records in branch
// order. Records that are identical in every field are kept once.
func (s *DirectoryStore) Search(ctx context.Context, plan query.Plan, params query.Params) ([]model.DirectoryRecord, error) {

	logger := log.GetLogger().WithContext(ctx)
	dbClient, dbType, err := dbClient(errors2.SEARCH_DIRECTORY)
	if err != nil {
		return nil, err
	}

	statements, err := query.Translate(plan, dbType, params)
	if err != nil {
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.SEARCH_DIRECTORY,
			"Failed to build search query"), err)
	}

	seen := map[string]bool{}
	records := []model.DirectoryRecord{}
	for _, statement := range statements {
		results, err := dbClient.ExecuteQuery(ctx, statement.SQL, statement.Args...)
		if err != nil {
			errorMsg := fmt.Sprintf("Failed to execute %s search branch", statement.Source)
			logger.Debug(errorMsg, log.Error(err))
			return nil, errors2.NewServerError(errors2.WithDescription(errors2.SEARCH_DIRECTORY, errorMsg), err)
		}
		for _, result := range results {
			row, err := s.scan(statement.Source, result)
			if err != nil {
				errorMsg := fmt.Sprintf("Failed to read %s search row", statement.Source)
				logger.Debug(errorMsg, log.Error(err))
				return nil, errors2.NewServerError(errors2.WithDescription(errors2.SEARCH_DIRECTORY, errorMsg), err)
			}
			record := row.toRecord()
			key := recordKey(record)
			if seen[key] {
				continue
			}
			seen[key] = true
			records = append(records, record)
		}
	}
	logger.Debug("Search branches executed", log.Int("branches", len(statements)), log.Int("records", len(records)))
	return records, nil
}

func (s *DirectoryStore) scan(source query.Source, result map[string]interface{}) (directoryRow, error) {

	switch source {
	case query.SourcePerson:
		return scanPersonRow(result), nil
	case query.SourcePersonalPhone:
		return scanPersonalPhoneRow(result, s.personalPhoneLabel), nil
	case query.SourceOrgUnit:
		return scanOrgUnitRow(result), nil
	case query.SourceManualEntry:
		return scanManualEntryRow(result)
	default:
		return nil, fmt.Errorf("no record projection for source %q", source)
	}
}

// FindRangeCandidates returns the visible persons and the org units matching params.Term.
func (s *DirectoryStore) FindRangeCandidates(ctx context.Context, params query.Params) ([]model.Person, []model.OrgUnit, error) {

	logger := log.GetLogger().WithContext(ctx)
	dbClient, dbType, err := dbClient(errors2.FIND_RANGES)
	if err != nil {
		return nil, nil, err
	}

	statements, err := query.Translate(query.RangePlan(), dbType, params)
	if err != nil {
		return nil, nil, errors2.NewServerError(errors2.WithDescription(errors2.FIND_RANGES,
			"Failed to build range query"), err)
	}

	persons := []model.Person{}
	orgUnits := []model.OrgUnit{}
	for _, statement := range statements {
		results, err := dbClient.ExecuteQuery(ctx, statement.SQL, statement.Args...)
		if err != nil {
			errorMsg := fmt.Sprintf("Failed to execute %s range query", statement.Source)
			logger.Debug(errorMsg, log.Error(err))
			return nil, nil, errors2.NewServerError(errors2.WithDescription(errors2.FIND_RANGES, errorMsg), err)
		}
		for _, row := range results {
			switch statement.Source {
			case query.SourceRangePerson:
				persons = append(persons, scanPerson(row))
			case query.SourceRangeOrgUnit:
				orgUnits = append(orgUnits, model.OrgUnit{
					ID:   client.String(row, "id"),
					Name: client.String(row, "name"),
				})
			}
		}
	}
	return persons, orgUnits, nil
}

func scanPerson(row map[string]interface{}) model.Person {
	id := client.String(row, "id")
	if id == "" {
		id = client.String(row, "person_id")
	}
	return model.Person{
		ID:          id,
		Username:    client.String(row, "username"),
		FirstName:   client.String(row, "first_name"),
		LastName:    client.String(row, "last_name"),
		TitlePrefix: client.String(row, "title_front"),
		TitleSuffix: client.String(row, "title_rear"),
	}
}

func (s *DirectoryStore) getPerson(ctx context.Context, queries map[string]string, value string) (*model.Person, error) {

	dbClient, dbType, err := dbClient(errors2.GET_PERSON)
	if err != nil {
		return nil, err
	}
	results, err := dbClient.ExecuteQuery(ctx, queries[dbType], value)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch person: %s", value)
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.GET_PERSON, errorMsg), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	person := scanPerson(results[0])
	return &person, nil
}

// GetPersonByUsername returns the person with the given login handle, or nil.
func (s *DirectoryStore) GetPersonByUsername(ctx context.Context, username string) (*model.Person, error) {
	return s.getPerson(ctx, scripts.GetPersonByUsername, username)
}

// GetPersonByID returns the person with the given id, or nil.
func (s *DirectoryStore) GetPersonByID(ctx context.Context, personID string) (*model.Person, error) {
	return s.getPerson(ctx, scripts.GetPersonByID, personID)
}

// GetOrgUnitByID returns the org unit with the given id, or nil.
func (s *DirectoryStore) GetOrgUnitByID(ctx context.Context, orgUnitID string) (*model.OrgUnit, error) {

	dbClient, dbType, err := dbClient(errors2.GET_PERSON)
	if err != nil {
		return nil, err
	}
	results, err := dbClient.ExecuteQuery(ctx, scripts.GetOrgUnitByID[dbType], orgUnitID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch org unit: %s", orgUnitID)
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.GET_PERSON, errorMsg), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &model.OrgUnit{
		ID:   client.String(results[0], "org_unit_id"),
		Name: client.String(results[0], "name"),
	}, nil
}

// IsMember reports whether the person belongs to the org unit.
func (s *DirectoryStore) IsMember(ctx context.Context, personID, orgUnitID string) (bool, error) {

	dbClient, dbType, err := dbClient(errors2.GET_PERSON)
	if err != nil {
		return false, err
	}
	errorMsg := fmt.Sprintf("Failed to check membership of %s in %s", personID, orgUnitID)
	results, err := dbClient.ExecuteQuery(ctx, scripts.CountMemberships[dbType], personID, orgUnitID)
	if err != nil {
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.WithDescription(errors2.GET_PERSON, errorMsg), err)
	}
	if len(results) == 0 {
		return false, nil
	}
	total, err := client.Int64(results[0], "total")
	if err != nil {
		return false, errors2.NewServerError(errors2.WithDescription(errors2.GET_PERSON, errorMsg), err)
	}
	return total > 0, nil
}

func (s *DirectoryStore) execute(ctx context.Context, errorMessage errors2.ErrorMessage, queries map[string]string,
	description string, args ...interface{}) (int64, error) {

	dbClient, dbType, err := dbClient(errorMessage)
	if err != nil {
		return 0, err
	}
	affected, err := dbClient.Execute(ctx, queries[dbType], args...)
	if err != nil {
		log.GetLogger().WithContext(ctx).Debug(description, log.Error(err))
		return 0, errors2.NewServerError(errors2.WithDescription(errorMessage, description),
			errors.Wrap(err, description))
	}
	return affected, nil
}

// UpsertMemberNote stores the note on the person's membership, replacing any previous note.
func (s *DirectoryStore) UpsertMemberNote(ctx context.Context, personID, orgUnitID, content string) error {

	_, err := s.execute(ctx, errors2.STORE_MEMBER_NOTE, scripts.UpsertMemberNote,
		fmt.Sprintf("Failed to store member note of %s in %s", personID, orgUnitID), personID, orgUnitID, content)
	return err
}

// DeleteMemberNote removes the note and reports whether there was one.
func (s *DirectoryStore) DeleteMemberNote(ctx context.Context, personID, orgUnitID string) (bool, error) {

	affected, err := s.execute(ctx, errors2.DELETE_MEMBER_NOTE, scripts.DeleteMemberNote,
		fmt.Sprintf("Failed to delete member note of %s in %s", personID, orgUnitID), personID, orgUnitID)
	return affected > 0, err
}

// UpsertPersonalPhone stores the person's personal number, replacing any previous one.
func (s *DirectoryStore) UpsertPersonalPhone(ctx context.Context, personID, number string) error {

	_, err := s.execute(ctx, errors2.STORE_PERSONAL_PHONE, scripts.UpsertPersonalPhone,
		fmt.Sprintf("Failed to store personal phone of %s", personID), personID, number)
	return err
}

// DeletePersonalPhone removes the personal number and reports whether there was one.
func (s *DirectoryStore) DeletePersonalPhone(ctx context.Context, personID string) (bool, error) {

	affected, err := s.execute(ctx, errors2.DELETE_PERSONAL_PHONE, scripts.DeletePersonalPhone,
		fmt.Sprintf("Failed to delete personal phone of %s", personID), personID)
	return affected > 0, err
}
