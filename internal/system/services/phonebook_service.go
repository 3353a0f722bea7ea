/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
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

package services

import (
	"net/http"
	"strings"

	directoryHandler "github.com/wso2/identity-phonebook-service/internal/directory/handler"
	entryHandler "github.com/wso2/identity-phonebook-service/internal/entry/handler"
	leadershipHandler "github.com/wso2/identity-phonebook-service/internal/leadership/handler"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
)

type PhonebookService struct {
	directory  *directoryHandler.DirectoryHandler
	entries    *entryHandler.EntryHandler
	leadership *leadershipHandler.LeadershipHandler
}

func NewPhonebookService() *PhonebookService {
	return &PhonebookService{
		directory:  directoryHandler.NewDirectoryHandler(),
		entries:    entryHandler.NewEntryHandler(),
		leadership: leadershipHandler.NewLeadershipHandler(),
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// Route dispatches every /phonebook request. The path arrives with the API base path already stripped.
func (s *PhonebookService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimPrefix(r.URL.Path, constants.PhonebookApiPath)
	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")
	method := r.Method

	switch {
	case parts[0] == "search" && len(parts) >= 2:
		if method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		// Search terms may themselves contain slashes.
		s.directory.Search(w, r, strings.Join(parts[1:], "/"))

	case path == "all":
		if method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.directory.SearchAll(w, r)

	case parts[0] == "ranges" && len(parts) >= 2:
		if method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.directory.GetRanges(w, r, strings.Join(parts[1:], "/"))

	case parts[0] == "entry":
		s.routeEntry(w, r, parts[1:])

	case parts[0] == "userinfo" && len(parts) == 3:
		switch method {
		case http.MethodPut:
			s.directory.SetMemberNote(w, r, parts[1], parts[2])
		case http.MethodDelete:
			s.directory.DeleteMemberNote(w, r, parts[1], parts[2])
		default:
			methodNotAllowed(w)
		}

	case parts[0] == "personalphone" && len(parts) == 2:
		switch method {
		case http.MethodPut:
			s.directory.SetPersonalPhone(w, r, parts[1])
		case http.MethodDelete:
			s.directory.DeletePersonalPhone(w, r, parts[1])
		default:
			methodNotAllowed(w)
		}

	case path == "config/leadership-groups":
		switch method {
		case http.MethodGet:
			s.leadership.GetConfig(w, r)
		case http.MethodPut:
			s.leadership.UpdateConfig(w, r)
		default:
			methodNotAllowed(w)
		}

	default:
		http.NotFound(w, r)
	}
}

func (s *PhonebookService) routeEntry(w http.ResponseWriter, r *http.Request, parts []string) {

	method := r.Method
	switch {
	case len(parts) == 0:
		if method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		s.entries.CreateEntry(w, r)

	case len(parts) == 1:
		switch method {
		case http.MethodGet:
			s.entries.GetEntry(w, r, parts[0])
		case http.MethodPatch:
			s.entries.UpdateEntry(w, r, parts[0])
		case http.MethodDelete:
			s.entries.DeleteEntry(w, r, parts[0])
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[0] == "external":
		switch method {
		case http.MethodGet:
			s.entries.GetEntryByExternalID(w, r, parts[1])
		case http.MethodPatch:
			s.entries.UpdateEntryByExternalID(w, r, parts[1])
		case http.MethodDelete:
			s.entries.DeleteEntryByExternalID(w, r, parts[1])
		default:
			methodNotAllowed(w)
		}

	default:
		http.NotFound(w, r)
	}
}
