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

package errors

const errorPrefix = "PHB-"

var (
	// Server error codes

	INTERNAL_SERVER_ERROR = ErrorMessage{
		Code:    errorPrefix + "15000",
		Message: "Internal server error",
	}

	SEARCH_DIRECTORY = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while searching the phonebook.",
	}

	FIND_RANGES = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while looking up persons and org units.",
	}

	ADD_ENTRY = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Could not store entry to database.",
	}

	GET_ENTRY = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching phonebook entry.",
	}

	UPDATE_ENTRY = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Could not store changes to database.",
	}

	DELETE_ENTRY = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Could not delete entry from database.",
	}

	GET_PERSON = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching person data.",
	}

	STORE_MEMBER_NOTE = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Could not store extra user info.",
	}

	DELETE_MEMBER_NOTE = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Could not delete extra user info.",
	}

	STORE_PERSONAL_PHONE = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Could not store personal phone number.",
	}

	DELETE_PERSONAL_PHONE = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Could not delete personal phone number.",
	}

	GET_LEADERSHIP_CONFIG = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while fetching leadership configuration.",
	}

	UPDATE_LEADERSHIP_CONFIG = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while updating leadership configuration.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while marshalling JSON.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Access denied.",
		Description: "You must be root or a phonebook admin in order to perform this operation.",
	}

	NO_SEARCH_FIELDS = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "No search fields specified.",
		Description: "The query parameter 'in' must name at least one search field.",
	}

	INVALID_SEARCH_FIELD = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Unknown search field.",
	}

	INVALID_PAGINATION = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Invalid pagination parameters.",
	}

	ENTRY_REQUIRED_FIELDS = ErrorMessage{
		Code:        errorPrefix + "11007",
		Message:     "Name and phone number are required.",
		Description: "Both 'name' and 'phone' must be non-blank.",
	}

	ENTRY_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11008",
		Message:     "Entry with the given ID not found.",
		Description: "No manual phonebook entry exists for the given id.",
	}

	ENTRY_EXTERNAL_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11009",
		Message:     "Entry with the given external ID not found.",
		Description: "No manual phonebook entry exists for the given external id.",
	}

	ENTRY_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Validation failed for phonebook entry.",
	}

	ENTRY_EXTERNAL_ID_CONFLICT = ErrorMessage{
		Code:        errorPrefix + "11011",
		Message:     "External ID already in use.",
		Description: "Another phonebook entry already carries the given external id.",
	}

	INVALID_OWNER = ErrorMessage{
		Code:        errorPrefix + "11012",
		Message:     "Unknown owner.",
		Description: "The given owner_ref is neither a person nor an org unit.",
	}

	INVALID_DATE = ErrorMessage{
		Code:    errorPrefix + "11013",
		Message: "Invalid date.",
	}

	PERSON_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11014",
		Message:     "Given username not found.",
		Description: "No person exists for the given login handle.",
	}

	NOT_A_MEMBER = ErrorMessage{
		Code:        errorPrefix + "11015",
		Message:     "User not assigned to given institute.",
		Description: "The person is not a member of the given org unit.",
	}

	NOTHING_TO_DELETE = ErrorMessage{
		Code:    errorPrefix + "11016",
		Message: "No content found, none deleted.",
	}

	INVALID_LEADERSHIP_CONFIG = ErrorMessage{
		Code:    errorPrefix + "11017",
		Message: "Invalid leadership configuration.",
	}
)
