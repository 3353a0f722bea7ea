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
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/wso2/identity-phonebook-service/internal/entry/model"
	"github.com/wso2/identity-phonebook-service/internal/system/database/client"
	"github.com/wso2/identity-phonebook-service/internal/system/database/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/database/scripts"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// EntryStoreInterface persists manual phonebook entries.
type EntryStoreInterface interface {
	Create(ctx context.Context, entry *model.ManualEntry) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.ManualEntry, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.ManualEntry, error)
	ExistsByExternalID(ctx context.Context, externalID string, excludeID int64) (bool, error)
	Update(ctx context.Context, entry *model.ManualEntry) error
	Delete(ctx context.Context, id int64) (bool, error)
	ResolveOwner(ctx context.Context, id string) (model.OwnerRef, bool, error)
}

// EntryStore is the database backed EntryStoreInterface.
type EntryStore struct{}

// NewEntryStore creates a new EntryStore.
func NewEntryStore() EntryStoreInterface {
	return &EntryStore{}
}

func dbClient(errorMessage errors2.ErrorMessage) (client.DBClientInterface, string, error) {

	dbProvider := provider.NewDBProvider()
	dbClient, err := dbProvider.GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for phonebook entries"
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, "", errors2.NewServerError(errors2.WithDescription(errorMessage, errorMsg), err)
	}
	return dbClient, dbProvider.GetDBType(), nil
}

// isUniqueViolation reports whether err is a unique constraint failure of either driver.
func isUniqueViolation(err error) bool {

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr *sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode() == sqlite3.CONSTRAINT_UNIQUE
	}
	return false
}

func conflictError() error {
	return errors2.NewClientError(errors2.ENTRY_EXTERNAL_ID_CONFLICT, http.StatusConflict)
}

func nullString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func nullTime(value *time.Time) interface{} {
	if value == nil {
		return nil
	}
	return value.UTC()
}

// Create inserts the entry and returns its generated id.
func (s *EntryStore) Create(ctx context.Context, entry *model.ManualEntry) (int64, error) {

	logger := log.GetLogger().WithContext(ctx)
	dbClient, dbType, err := dbClient(errors2.ADD_ENTRY)
	if err != nil {
		return 0, err
	}

	results, err := dbClient.ExecuteQuery(ctx, scripts.InsertEntry[dbType],
		entry.Name, string(entry.Owner.Kind), entry.Owner.ID, entry.Phone,
		nullString(entry.Note), nullString(entry.Building), nullString(entry.Room), nullString(entry.ExternalID),
		entry.Creator, entry.CreatedAt.UTC(), entry.UpdatedAt.UTC(),
		nullTime(entry.ValidFrom), nullTime(entry.ValidUntil))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, conflictError()
		}
		errorMsg := "Failed to insert phonebook entry"
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.WithDescription(errors2.ADD_ENTRY, errorMsg),
			errors.Wrap(err, errorMsg))
	}
	if len(results) == 0 {
		return 0, errors2.NewServerError(errors2.ADD_ENTRY, errors.New("insert returned no id"))
	}
	id, err := client.Int64(results[0], "entry_id")
	if err != nil {
		return 0, errors2.NewServerError(errors2.ADD_ENTRY, errors.Wrap(err, "failed to read generated id"))
	}
	logger.Debug("Phonebook entry inserted", log.Int64("id", id))
	return id, nil
}

// FindByID returns the entry with the given id, nil when there is none.
func (s *EntryStore) FindByID(ctx context.Context, id int64) (*model.ManualEntry, error) {
	return s.findOne(ctx, scripts.GetEntryByID, id)
}

// FindByExternalID returns the entry carrying the external id, nil when there is none.
func (s *EntryStore) FindByExternalID(ctx context.Context, externalID string) (*model.ManualEntry, error) {
	return s.findOne(ctx, scripts.GetEntryByExternalID, externalID)
}

func (s *EntryStore) findOne(ctx context.Context, queries map[string]string, key interface{}) (*model.ManualEntry, error) {

	dbClient, dbType, err := dbClient(errors2.GET_ENTRY)
	if err != nil {
		return nil, err
	}
	results, err := dbClient.ExecuteQuery(ctx, queries[dbType], key)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch phonebook entry: %v", key)
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.GET_ENTRY, errorMsg), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	entry, err := scanEntry(results[0])
	if err != nil {
		return nil, errors2.NewServerError(errors2.WithDescription(errors2.GET_ENTRY,
			"Failed to read phonebook entry"), err)
	}
	return entry, nil
}

func scanEntry(row map[string]interface{}) (*model.ManualEntry, error) {

	id, err := client.Int64(row, "entry_id")
	if err != nil {
		return nil, err
	}
	createdAt, err := client.Time(row, "created_at")
	if err != nil {
		return nil, err
	}
	updatedAt, err := client.Time(row, "updated_at")
	if err != nil {
		return nil, err
	}
	validFrom, err := client.Time(row, "valid_from")
	if err != nil {
		return nil, err
	}
	validUntil, err := client.Time(row, "valid_until")
	if err != nil {
		return nil, err
	}

	entry := &model.ManualEntry{
		ID:   id,
		Name: client.String(row, "name"),
		Owner: model.OwnerRef{
			Kind: model.OwnerKind(client.String(row, "owner_kind")),
			ID:   client.String(row, "owner_id"),
		},
		Phone:      client.String(row, "phone"),
		Note:       client.NullableString(row, "note"),
		Building:   client.NullableString(row, "building"),
		Room:       client.NullableString(row, "room"),
		ExternalID: client.NullableString(row, "external_id"),
		Creator:    client.String(row, "creator"),
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	}
	if createdAt != nil {
		entry.CreatedAt = *createdAt
	}
	if updatedAt != nil {
		entry.UpdatedAt = *updatedAt
	}
	return entry, nil
}

// ExistsByExternalID reports whether an entry other than excludeID carries the external id.
func (s *EntryStore) ExistsByExternalID(ctx context.Context, externalID string, excludeID int64) (bool, error) {

	dbClient, dbType, err := dbClient(errors2.GET_ENTRY)
	if err != nil {
		return false, err
	}
	results, err := dbClient.ExecuteQuery(ctx, scripts.CountEntriesByExternalID[dbType], externalID, excludeID)
	if err != nil {
		errorMsg := "Failed to check external id"
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.WithDescription(errors2.GET_ENTRY, errorMsg), err)
	}
	if len(results) == 0 {
		return false, nil
	}
	total, err := client.Int64(results[0], "total")
	if err != nil {
		return false, errors2.NewServerError(errors2.GET_ENTRY, err)
	}
	return total > 0, nil
}

// Update writes every mutable column of the entry.
func (s *EntryStore) Update(ctx context.Context, entry *model.ManualEntry) error {

	logger := log.GetLogger().WithContext(ctx)
	dbClient, dbType, err := dbClient(errors2.UPDATE_ENTRY)
	if err != nil {
		return err
	}

	affected, err := dbClient.Execute(ctx, scripts.UpdateEntry[dbType],
		entry.Name, string(entry.Owner.Kind), entry.Owner.ID, entry.Phone,
		nullString(entry.Note), nullString(entry.Building), nullString(entry.Room), nullString(entry.ExternalID),
		entry.UpdatedAt.UTC(), nullTime(entry.ValidFrom), nullTime(entry.ValidUntil), entry.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return conflictError()
		}
		errorMsg := fmt.Sprintf("Failed to update phonebook entry: %d", entry.ID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.WithDescription(errors2.UPDATE_ENTRY, errorMsg),
			errors.Wrap(err, errorMsg))
	}
	if affected == 0 {
		return errors2.NewClientError(errors2.ENTRY_NOT_FOUND, http.StatusNotFound)
	}
	return nil
}

// Delete removes the entry and reports whether it existed.
func (s *EntryStore) Delete(ctx context.Context, id int64) (bool, error) {

	dbClient, dbType, err := dbClient(errors2.DELETE_ENTRY)
	if err != nil {
		return false, err
	}
	affected, err := dbClient.Execute(ctx, scripts.DeleteEntry[dbType], id)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete phonebook entry: %d", id)
		log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.WithDescription(errors2.DELETE_ENTRY, errorMsg),
			errors.Wrap(err, errorMsg))
	}
	return affected > 0, nil
}

// ResolveOwner looks the id up among persons first, then among org units.
func (s *EntryStore) ResolveOwner(ctx context.Context, id string) (model.OwnerRef, bool, error) {

	dbClient, dbType, err := dbClient(errors2.GET_PERSON)
	if err != nil {
		return model.OwnerRef{}, false, err
	}
	for _, candidate := range []struct {
		kind    model.OwnerKind
		queries map[string]string
	}{
		{model.OwnerPerson, scripts.GetPersonByID},
		{model.OwnerOrgUnit, scripts.GetOrgUnitByID},
	} {
		results, err := dbClient.ExecuteQuery(ctx, candidate.queries[dbType], id)
		if err != nil {
			errorMsg := fmt.Sprintf("Failed to resolve owner: %s", id)
			log.GetLogger().WithContext(ctx).Debug(errorMsg, log.Error(err))
			return model.OwnerRef{}, false, errors2.NewServerError(errors2.WithDescription(errors2.GET_PERSON, errorMsg), err)
		}
		if len(results) > 0 {
			return model.OwnerRef{Kind: candidate.kind, ID: id}, true, nil
		}
	}
	return model.OwnerRef{}, false, nil
}
