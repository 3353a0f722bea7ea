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
	"net/http"
	"strings"
	"time"

	"github.com/wso2/identity-phonebook-service/internal/avatar"
	"github.com/wso2/identity-phonebook-service/internal/directory/enricher"
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/directory/query"
	"github.com/wso2/identity-phonebook-service/internal/directory/store"
	leadershipService "github.com/wso2/identity-phonebook-service/internal/leadership/service"
	"github.com/wso2/identity-phonebook-service/internal/system/config"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	pcontext "github.com/wso2/identity-phonebook-service/internal/system/context"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("directory")

// DirectoryServiceInterface answers searches and maintains the person data the phonebook owns.
type DirectoryServiceInterface interface {
	Search(ctx context.Context, request model.SearchRequest) (*model.PaginatedResult, error)
	SearchAll(ctx context.Context, offset int, limit *int) (*model.PaginatedResult, error)
	FindRanges(ctx context.Context, term string) ([]model.Range, error)
	SetMemberNote(ctx context.Context, actor, username, orgUnitID, content string) (*model.MemberNote, error)
	DeleteMemberNote(ctx context.Context, actor, username, orgUnitID string) error
	SetPersonalPhone(ctx context.Context, actor, username, number string) (*model.PersonalPhone, error)
	DeletePersonalPhone(ctx context.Context, actor, username string) error
}

// GroupSource provides the role group names that make a member a leader.
type GroupSource interface {
	GetGroups(ctx context.Context) ([]string, error)
}

// Settings are the paging and visibility rules of a search.
type Settings struct {
	DefaultLimit    int
	MaxLimit        int
	AllDefaultLimit int
	VisibleStates   []string
}

// DirectoryService is the default DirectoryServiceInterface.
type DirectoryService struct {
	store    store.DirectoryStoreInterface
	groups   GroupSource
	enricher *enricher.Enricher
	settings Settings
	now      func() time.Time
}

// GetDirectoryService wires the service from the runtime configuration.
func GetDirectoryService() DirectoryServiceInterface {

	pb := config.GetPhonebookRuntime().Config.Phonebook
	return NewDirectoryService(
		store.NewDirectoryStore(pb.PersonalPhoneLabel),
		leadershipService.GetLeadershipService(),
		enricher.NewEnricher(avatar.NewFileResolver(pb.Avatar.Dir, pb.Avatar.URL), pb.BaseURL),
		Settings{
			DefaultLimit:    pb.DefaultLimit,
			MaxLimit:        pb.MaxLimit,
			AllDefaultLimit: pb.AllDefaultLimit,
			VisibleStates:   pb.VisibleStates,
		},
		time.Now,
	)
}

// NewDirectoryService creates a service from its collaborators. now is the clock used for validity checks.
func NewDirectoryService(s store.DirectoryStoreInterface, groups GroupSource, e *enricher.Enricher,
	settings Settings, now func() time.Time) DirectoryServiceInterface {

	if settings.DefaultLimit <= 0 {
		settings.DefaultLimit = constants.DefaultSearchLimit
	}
	if settings.AllDefaultLimit <= 0 {
		settings.AllDefaultLimit = constants.DefaultAllLimit
	}
	return &DirectoryService{store: s, groups: groups, enricher: e, settings: settings, now: now}
}

// Search runs the term against the requested dimensions and returns one sorted page.
func (d *DirectoryService) Search(ctx context.Context, request model.SearchRequest) (*model.PaginatedResult, error) {

	dimensions, err := ParseDimensions(request.Dimensions)
	if err != nil {
		return nil, err
	}
	return d.search(ctx, request.Term, dimensions, request.Offset, d.pageSize(request.Limit, d.settings.DefaultLimit))
}

// SearchAll lists every visible person. The term is a bare wildcard.
func (d *DirectoryService) SearchAll(ctx context.Context, offset int, limit *int) (*model.PaginatedResult, error) {

	return d.search(ctx, "%", []model.Dimension{model.PersonName}, offset,
		d.pageSize(limit, d.settings.AllDefaultLimit))
}

func (d *DirectoryService) pageSize(limit *int, fallback int) int {

	size := fallback
	if limit != nil {
		size = *limit
	}
	if size < 0 {
		size = fallback
	}
	if d.settings.MaxLimit > 0 && size > d.settings.MaxLimit {
		size = d.settings.MaxLimit
	}
	return size
}

func (d *DirectoryService) search(ctx context.Context, term string, dimensions []model.Dimension,
	offset, limit int) (result *model.PaginatedResult, err error) {

	ctx, span := tracer.Start(ctx, "Directory.Service.Search")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "search failed")
		} else if result != nil {
			span.SetAttributes(attribute.Int("phonebook.total", result.TotalCount))
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("phonebook.term", term),
		attribute.StringSlice("phonebook.dimensions", dimensionNames(dimensions)))

	logger := log.GetLogger().WithContext(ctx)
	if offset < 0 {
		offset = 0
	}

	var groups []string
	if containsDimension(dimensions, model.OrgUnitLeadership) {
		if groups, err = d.groups.GetGroups(ctx); err != nil {
			return nil, err
		}
	}

	params := query.Params{
		Term:             term,
		VisibleStates:    d.settings.VisibleStates,
		LeadershipGroups: groups,
		AsOf:             d.now().UTC().Truncate(time.Second),
	}
	records, err := d.store.Search(ctx, query.Compose(dimensions, groups), params)
	if err != nil {
		return nil, err
	}

	enriched := d.enricher.Enrich(ctx, records)
	sortRecords(enriched)
	etag, err := fingerprint(enriched)
	if err != nil {
		return nil, errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	total := len(enriched)
	start := min(offset, total)
	end := start + min(limit, total-start)
	logger.Debug("Search completed", log.String("term", term), log.Int("total", total),
		log.Int("offset", offset), log.Int("limit", limit))

	return &model.PaginatedResult{
		Items:             append([]model.EnrichedRecord{}, enriched[start:end]...),
		TotalCount:        total,
		Offset:            offset,
		Limit:             limit,
		Term:              term,
		AppliedDimensions: dimensions,
		ETag:              etag,
	}, nil
}

func dimensionNames(dimensions []model.Dimension) []string {
	names := make([]string, len(dimensions))
	for i, dimension := range dimensions {
		names[i] = string(dimension)
	}
	return names
}

func containsDimension(dimensions []model.Dimension, wanted model.Dimension) bool {
	for _, dimension := range dimensions {
		if dimension == wanted {
			return true
		}
	}
	return false
}

// FindRanges lists the persons and org units a manual entry could belong to.
func (d *DirectoryService) FindRanges(ctx context.Context, term string) ([]model.Range, error) {

	ctx, span := tracer.Start(ctx, "Directory.Service.FindRanges")
	defer span.End()

	persons, orgUnits, err := d.store.FindRangeCandidates(ctx, query.Params{
		Term:          term,
		VisibleStates: d.settings.VisibleStates,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ranges := make([]model.Range, 0, len(persons)+len(orgUnits))
	for _, person := range persons {
		ranges = append(ranges, model.Range{
			ID:          person.ID,
			DisplayName: personDisplayName(person),
			Kind:        constants.SourcePerson,
		})
	}
	for _, orgUnit := range orgUnits {
		ranges = append(ranges, model.Range{ID: orgUnit.ID, DisplayName: orgUnit.Name, Kind: constants.SourceOrgUnit})
	}
	sortRanges(ranges)
	return ranges, nil
}

func (d *DirectoryService) requirePerson(ctx context.Context, username string) (*model.Person, error) {

	person, err := d.store.GetPersonByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, errors2.NewClientError(errors2.PERSON_NOT_FOUND, http.StatusNotFound)
	}
	return person, nil
}

// SetMemberNote stores the note of a person in one of their org units.
func (d *DirectoryService) SetMemberNote(ctx context.Context, actor, username, orgUnitID,
	content string) (*model.MemberNote, error) {

	person, err := d.requirePerson(ctx, username)
	if err != nil {
		return nil, err
	}
	member, err := d.store.IsMember(ctx, person.ID, orgUnitID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors2.NewClientError(errors2.NOT_A_MEMBER, http.StatusBadRequest)
	}
	if err := d.store.UpsertMemberNote(ctx, person.ID, orgUnitID, content); err != nil {
		return nil, err
	}
	audit(ctx, actor, person.ID+"/"+orgUnitID, log.TargetTypeMemberNote, log.ActionSetMemberNote)
	return &model.MemberNote{Username: person.Username, OrgUnitID: orgUnitID, Content: content}, nil
}

// DeleteMemberNote removes a note; deleting a note that does not exist is a NotFound.
func (d *DirectoryService) DeleteMemberNote(ctx context.Context, actor, username, orgUnitID string) error {

	person, err := d.requirePerson(ctx, username)
	if err != nil {
		return err
	}
	deleted, err := d.store.DeleteMemberNote(ctx, person.ID, orgUnitID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors2.NewClientError(errors2.NOTHING_TO_DELETE, http.StatusNotFound)
	}
	audit(ctx, actor, person.ID+"/"+orgUnitID, log.TargetTypeMemberNote, log.ActionDeleteMemberNote)
	return nil
}

// SetPersonalPhone stores a person's personal phone number.
func (d *DirectoryService) SetPersonalPhone(ctx context.Context, actor, username,
	number string) (*model.PersonalPhone, error) {

	number = strings.TrimSpace(number)
	if number == "" {
		return nil, errors2.NewClientError(errors2.WithDescription(errors2.BAD_REQUEST,
			"The number field must not be blank."), http.StatusBadRequest)
	}
	person, err := d.requirePerson(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := d.store.UpsertPersonalPhone(ctx, person.ID, number); err != nil {
		return nil, err
	}
	audit(ctx, actor, person.ID, log.TargetTypePersonalPhone, log.ActionSetPersonalPhone)
	return &model.PersonalPhone{Username: person.Username, Number: number}, nil
}

// DeletePersonalPhone removes a person's personal phone number.
func (d *DirectoryService) DeletePersonalPhone(ctx context.Context, actor, username string) error {

	person, err := d.requirePerson(ctx, username)
	if err != nil {
		return err
	}
	deleted, err := d.store.DeletePersonalPhone(ctx, person.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors2.NewClientError(errors2.NOTHING_TO_DELETE, http.StatusNotFound)
	}
	audit(ctx, actor, person.ID, log.TargetTypePersonalPhone, log.ActionDeletePersonalPhone)
	return nil
}

func audit(ctx context.Context, actor, targetID, targetType, action string) {
	log.GetLogger().WithContext(ctx).Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      targetID,
		TargetType:    targetType,
		ActionID:      action,
		TraceID:       pcontext.GetTraceID(ctx),
	})
}
