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

package enricher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/wso2/identity-phonebook-service/internal/avatar"
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// Enricher adds pictures and profile links to directory records.
type Enricher struct {
	avatars avatar.ResolverInterface
	baseURL string
}

// NewEnricher creates an Enricher linking to the platform at baseURL.
func NewEnricher(avatars avatar.ResolverInterface, baseURL string) *Enricher {
	return &Enricher{avatars: avatars, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Enrich decorates every record, preserving order. A failed avatar lookup
// leaves the record without a picture.
func (e *Enricher) Enrich(ctx context.Context, records []model.DirectoryRecord) []model.EnrichedRecord {

	logger := log.GetLogger().WithContext(ctx)
	enriched := make([]model.EnrichedRecord, len(records))
	for i, record := range records {
		enriched[i] = model.EnrichedRecord{
			DirectoryRecord: record,
			ProfileLink:     e.link(record),
		}
		if record.SourceKind == constants.SourceManualEntry {
			continue
		}
		picture, err := e.avatars.Resolve(ctx, record.SourceKind, record.ID)
		if err != nil {
			logger.Debug("Avatar lookup failed", log.String("source", record.SourceKind),
				log.String("id", record.ID), log.Error(err))
			continue
		}
		pictureRef := picture.URL
		enriched[i].PictureRef = &pictureRef
		enriched[i].IsCustomPicture = picture.Custom
	}
	return enriched
}

func (e *Enricher) link(record model.DirectoryRecord) string {

	switch record.SourceKind {
	case constants.SourcePerson:
		return e.baseURL + "/dispatch.php/profile?username=" + url.QueryEscape(record.LoginHandle)
	case constants.SourceOrgUnit:
		return e.baseURL + "/dispatch.php/institute/overview?cid=" + url.QueryEscape(record.ID)
	case constants.SourceManualEntry:
		return ""
	default:
		panic(fmt.Sprintf("enricher: unknown source kind %q", record.SourceKind))
	}
}
