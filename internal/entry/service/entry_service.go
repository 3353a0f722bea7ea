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

package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wso2/identity-phonebook-service/internal/entry/model"
	"github.com/wso2/identity-phonebook-service/internal/entry/store"
	"github.com/wso2/identity-phonebook-service/internal/system/config"
	pcontext "github.com/wso2/identity-phonebook-service/internal/system/context"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("entry")

// EntryServiceInterface manages manual phonebook entries.
type EntryServiceInterface interface {
	CreateEntry(ctx context.Context, actor string, request model.CreateEntryRequest) (*model.ManualEntry, error)
	GetEntry(ctx context.Context, id string) (*model.ManualEntry, error)
	GetEntryByExternalID(ctx context.Context, externalID string) (*model.ManualEntry, error)
	UpdateEntry(ctx context.Context, actor, id string, request model.UpdateEntryRequest) (*model.ManualEntry, error)
	UpdateEntryByExternalID(ctx context.Context, actor, externalID string, request model.UpdateEntryRequest) (*model.ManualEntry, error)
	DeleteEntry(ctx context.Context, actor, id string) error
	DeleteEntryByExternalID(ctx context.Context, actor, externalID string) error
}

// EntryService is the default EntryServiceInterface.
type EntryService struct {
	store       store.EntryStoreInterface
	phonePrefix string
	location    *time.Location
	now         func() time.Time
}

// GetEntryService wires the service from the runtime configuration.
func GetEntryService() EntryServiceInterface {

	pb := config.GetPhonebookRuntime().Config.Phonebook
	return NewEntryService(store.NewEntryStore(), pb.PhonePrefix, pb.Timezone, time.Now)
}

// NewEntryService creates a service that prefixes new phone numbers with phonePrefix
// and reads dates without an offset in the named time zone.
func NewEntryService(s store.EntryStoreInterface, phonePrefix, timezone string, now func() time.Time) EntryServiceInterface {
	return &EntryService{store: s, phonePrefix: phonePrefix, location: loadLocation(timezone), now: now}
}

func (e *EntryService) timestamp() time.Time {
	return e.now().UTC().Truncate(time.Second)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func clientError(msg errors2.ErrorMessage, description string, status int) error {
	if description != "" {
		msg = errors2.WithDescription(msg, description)
	}
	return errors2.NewClientError(msg, status)
}

// CreateEntry validates the request and stores a new entry created by actor.
func (e *EntryService) CreateEntry(ctx context.Context, actor string,
	request model.CreateEntryRequest) (*model.ManualEntry, error) {

	ctx, span := tracer.Start(ctx, "Entry.Service.CreateEntry")
	defer span.End()

	name := strings.TrimSpace(request.Name)
	phone := strings.TrimSpace(request.Phone)
	if name == "" || phone == "" {
		return nil, errors2.NewClientError(errors2.ENTRY_REQUIRED_FIELDS, http.StatusBadRequest)
	}
	if err := checkLengths(request, http.StatusBadRequest); err != nil {
		return nil, err
	}

	now := e.timestamp()
	entry := &model.ManualEntry{
		Name:       name,
		Phone:      e.phonePrefix + phone,
		Note:       optional(request.Note),
		Building:   optional(request.Building),
		Room:       optional(request.Room),
		ExternalID: optional(request.ExternalID),
		Creator:    actor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if ownerID := strings.TrimSpace(request.OwnerRef); ownerID != "" {
		owner, err := e.resolveOwner(ctx, ownerID, http.StatusBadRequest)
		if err != nil {
			return nil, err
		}
		entry.Owner = owner
	}

	var err error
	if entry.ValidFrom, err = e.date("valid_from", request.ValidFrom, http.StatusBadRequest); err != nil {
		return nil, err
	}
	if entry.ValidUntil, err = e.date("valid_until", request.ValidUntil, http.StatusBadRequest); err != nil {
		return nil, err
	}
	if err := checkWindow(entry, http.StatusBadRequest); err != nil {
		return nil, err
	}
	if err := e.checkExternalID(ctx, entry.ExternalID, 0); err != nil {
		return nil, err
	}

	id, err := e.store.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	span.SetAttributes(attribute.Int64("phonebook.entry_id", id))
	audit(ctx, actor, id, log.ActionAddEntry, entry.Name)
	return entry, nil
}

func (e *EntryService) resolveOwner(ctx context.Context, id string, status int) (model.OwnerRef, error) {

	owner, ok, err := e.store.ResolveOwner(ctx, id)
	if err != nil {
		return model.OwnerRef{}, err
	}
	if !ok {
		return model.OwnerRef{}, clientError(errors2.INVALID_OWNER,
			fmt.Sprintf("No person or org unit with id %q exists.", id), status)
	}
	return owner, nil
}

// date parses an optional date field; blank means no date.
func (e *EntryService) date(field, raw string, status int) (*time.Time, error) {

	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(raw, e.location)
	if err != nil {
		return nil, clientError(errors2.INVALID_DATE, fmt.Sprintf("The %s field is not a valid date.", field), status)
	}
	return &t, nil
}

func checkWindow(entry *model.ManualEntry, status int) error {

	if entry.ValidFrom != nil && entry.ValidUntil != nil && entry.ValidFrom.After(*entry.ValidUntil) {
		return clientError(errors2.ENTRY_VALIDATION, "valid_from must not be later than valid_until.", status)
	}
	return nil
}

func (e *EntryService) checkExternalID(ctx context.Context, externalID *string, excludeID int64) error {

	if externalID == nil {
		return nil
	}
	exists, err := e.store.ExistsByExternalID(ctx, *externalID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errors2.NewClientError(errors2.ENTRY_EXTERNAL_ID_CONFLICT, http.StatusConflict)
	}
	return nil
}

// GetEntry returns the entry with the given id. Ids that are not numbers never exist.
func (e *EntryService) GetEntry(ctx context.Context, id string) (*model.ManualEntry, error) {

	entryID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return nil, errors2.NewClientError(errors2.ENTRY_NOT_FOUND, http.StatusNotFound)
	}
	entry, err := e.store.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors2.NewClientError(errors2.ENTRY_NOT_FOUND, http.StatusNotFound)
	}
	return entry, nil
}

// GetEntryByExternalID returns the entry carrying the external id.
func (e *EntryService) GetEntryByExternalID(ctx context.Context, externalID string) (*model.ManualEntry, error) {

	entry, err := e.store.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors2.NewClientError(errors2.ENTRY_EXTERNAL_NOT_FOUND, http.StatusNotFound)
	}
	return entry, nil
}

// UpdateEntry applies a partial update. Absent fields stay as they are, blank
// text fields are ignored and blank dates clear the date.
func (e *EntryService) UpdateEntry(ctx context.Context, actor, id string,
	request model.UpdateEntryRequest) (*model.ManualEntry, error) {

	entry, err := e.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.update(ctx, actor, entry, request)
}

// UpdateEntryByExternalID applies a partial update to the entry carrying the external id.
func (e *EntryService) UpdateEntryByExternalID(ctx context.Context, actor, externalID string,
	request model.UpdateEntryRequest) (*model.ManualEntry, error) {

	entry, err := e.GetEntryByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return e.update(ctx, actor, entry, request)
}

func (e *EntryService) update(ctx context.Context, actor string, entry *model.ManualEntry,
	request model.UpdateEntryRequest) (*model.ManualEntry, error) {

	ctx, span := tracer.Start(ctx, "Entry.Service.UpdateEntry",
		trace.WithAttributes(attribute.Int64("phonebook.entry_id", entry.ID)))
	defer span.End()

	if err := checkLengths(request.Values(), http.StatusUnprocessableEntity); err != nil {
		return nil, err
	}
	if request.Name.Set {
		name := strings.TrimSpace(request.Name.Value)
		if name == "" {
			return nil, clientError(errors2.ENTRY_VALIDATION, "A name for the entry is required.",
				http.StatusUnprocessableEntity)
		}
		entry.Name = name
	}
	if request.Phone.Set {
		phone := strings.TrimSpace(request.Phone.Value)
		if phone == "" {
			return nil, clientError(errors2.ENTRY_VALIDATION, "A phone number for the entry is required.",
				http.StatusUnprocessableEntity)
		}
		entry.Phone = phone
	}

	if ownerID := strings.TrimSpace(request.OwnerRef.Value); request.OwnerRef.Set && ownerID != "" {
		owner, err := e.resolveOwner(ctx, ownerID, http.StatusUnprocessableEntity)
		if err != nil {
			return nil, err
		}
		entry.Owner = owner
	}

	for _, field := range []struct {
		value  model.OptionalString
		target **string
	}{
		{request.Note, &entry.Note},
		{request.Building, &entry.Building},
		{request.Room, &entry.Room},
		{request.ExternalID, &entry.ExternalID},
	} {
		if value := optional(field.value.Value); field.value.Set && value != nil {
			*field.target = value
		}
	}

	for _, field := range []struct {
		name   string
		value  model.OptionalString
		target **time.Time
	}{
		{"valid_from", request.ValidFrom, &entry.ValidFrom},
		{"valid_until", request.ValidUntil, &entry.ValidUntil},
	} {
		if !field.value.Set {
			continue
		}
		date, err := e.date(field.name, field.value.Value, http.StatusUnprocessableEntity)
		if err != nil {
			return nil, err
		}
		*field.target = date
	}

	if err := checkWindow(entry, http.StatusUnprocessableEntity); err != nil {
		return nil, err
	}
	if request.ExternalID.Set {
		if err := e.checkExternalID(ctx, entry.ExternalID, entry.ID); err != nil {
			return nil, err
		}
	}

	entry.UpdatedAt = e.timestamp()
	if err := e.store.Update(ctx, entry); err != nil {
		return nil, err
	}
	audit(ctx, actor, entry.ID, log.ActionUpdateEntry, entry.Name)
	return entry, nil
}

// DeleteEntry removes the entry with the given id.
func (e *EntryService) DeleteEntry(ctx context.Context, actor, id string) error {

	entry, err := e.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	return e.delete(ctx, actor, entry)
}

// DeleteEntryByExternalID removes the entry carrying the external id.
func (e *EntryService) DeleteEntryByExternalID(ctx context.Context, actor, externalID string) error {

	entry, err := e.GetEntryByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	return e.delete(ctx, actor, entry)
}

func (e *EntryService) delete(ctx context.Context, actor string, entry *model.ManualEntry) error {

	ctx, span := tracer.Start(ctx, "Entry.Service.DeleteEntry",
		trace.WithAttributes(attribute.Int64("phonebook.entry_id", entry.ID)))
	defer span.End()

	deleted, err := e.store.Delete(ctx, entry.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors2.NewClientError(errors2.ENTRY_NOT_FOUND, http.StatusNotFound)
	}
	audit(ctx, actor, entry.ID, log.ActionDeleteEntry, entry.Name)
	return nil
}

func audit(ctx context.Context, actor string, id int64, action, name string) {
	log.GetLogger().WithContext(ctx).Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      strconv.FormatInt(id, 10),
		TargetType:    log.TargetTypeEntry,
		ActionID:      action,
		TraceID:       pcontext.GetTraceID(ctx),
		Data:          map[string]string{"name": name},
	})
}
