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

package service

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/wso2/identity-phonebook-service/internal/entry/model"
	errors2 "github.com/wso2/identity-phonebook-service/internal/system/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// fieldValidator reports struct violations by their JSON names.
func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// checkLengths rejects field values longer than their columns allow.
func checkLengths(values model.CreateEntryRequest, status int) error {

	err := fieldValidator().Struct(values)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return err
	}
	first := violations[0]
	if first.Tag() == "max" {
		return clientError(errors2.ENTRY_VALIDATION,
			fmt.Sprintf("The %s field must not exceed %s characters.", first.Field(), first.Param()), status)
	}
	return clientError(errors2.ENTRY_VALIDATION, fmt.Sprintf("The %s field is invalid.", first.Field()), status)
}
