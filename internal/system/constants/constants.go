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

package constants

import "time"

// ApiBasePath is the prefix every phonebook route is mounted under.
const ApiBasePath = "/api"

const PhonebookApiPath = "/phonebook"

type contextKey string

const TraceIDContextKey contextKey = "trace_id"

const TraceIDHeader = "X-Trace-Id"

// Database types understood by the provider and the query translator.
const (
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

// Source kinds of a directory record.
const (
	SourcePerson      = "person"
	SourceOrgUnit     = "orgUnit"
	SourceManualEntry = "manualEntry"
)

// Search dimensions as they appear on the wire ("in" query parameter).
const (
	DimensionPersonName        = "person_name"
	DimensionPhoneNumber       = "phone_number"
	DimensionOrgUnitName       = "org_unit_name"
	DimensionRoom              = "room"
	DimensionOrgUnitLeadership = "org_unit_leadership"
)

// LegacyDimensionAliases maps the institute-based names older clients still send.
var LegacyDimensionAliases = map[string]string{
	"institute_name":   DimensionOrgUnitName,
	"institute_holder": DimensionOrgUnitLeadership,
}

// Keys of the phonebook_config table.
const (
	ConfigLeadershipGroups = "leadership_groups"
)

// Default values used when deployment.yaml leaves a phonebook setting empty.
const (
	DefaultSearchLimit        = 100
	DefaultAllLimit           = 500
	DefaultTimezone           = "Europe/Berlin"
	DefaultPersonalPhoneLabel = "Persönliche Telefonnummer"
	DefaultAdminPerm          = "root"
	DefaultAdminRole          = "Telefonbuch-Admin"
)

// ReadinessTimeout bounds the database probe behind /ready.
const ReadinessTimeout = 2 * time.Second

// DefaultVisibleStates are the person visibility values that are searchable.
var DefaultVisibleStates = []string{"yes", "always"}

// Operations checked by authz.
const (
	OperationSearch       = "phonebook:search"
	OperationReadEntry    = "phonebook:entry:read"
	OperationReadConfig   = "phonebook:config:read"
	OperationManageEntry  = "phonebook:entry:manage"
	OperationManagePerson = "phonebook:person:manage"
	OperationManageConfig = "phonebook:config:manage"
)
