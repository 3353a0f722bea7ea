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

package utils

import (
	"encoding/json"
	"errors" // Standard Go errors package
	"net/http"
	"strings"

	pcontext "github.com/wso2/identity-phonebook-service/internal/system/context"
	customerrors "github.com/wso2/identity-phonebook-service/internal/system/errors" // Alias for the custom errors
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error. Server
// errors are logged with their cause and answered with a generic body.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {

	traceID := pcontext.GetTraceID(r.Context())
	w.Header().Set("Content-Type", "application/json")

	var clientError *customerrors.ClientError
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(customerrors.ErrorMessage{
			Code:        clientError.Code,
			Message:     clientError.Message,
			Description: clientError.Description,
			TraceID:     traceID,
		})
		return
	}

	logger := log.GetLogger().WithContext(r.Context())
	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger.Error(serverError.Message, log.String("code", serverError.Code),
			log.String("description", serverError.Description), log.Error(serverError.Err))
	} else {
		logger.Error("Unexpected error", log.Error(err))
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(customerrors.ErrorMessage{
		Code:    customerrors.INTERNAL_SERVER_ERROR.Code,
		Message: customerrors.INTERNAL_SERVER_ERROR.Message,
		TraceID: traceID,
	})
}

// WriteJSONResponse writes data as a JSON body with the given status.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// MaxRequestBodyBytes caps every JSON request body.
const MaxRequestBodyBytes = 64 << 10

// DecodeJSONBody decodes a single JSON object from the request body into v, rejecting
// unknown fields and trailing data. On failure it returns a description suitable for a 400 response.
func DecodeJSONBody(r *http.Request, v interface{}, resourceName string) (string, bool) {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return HandleDecodeError(err, resourceName), false
	}
	if decoder.More() {
		return HandleDecodeError(errTrailingData, resourceName), false
	}
	return "", true
}

// SplitCSV splits a comma separated query value, dropping blanks.
func SplitCSV(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
