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

package scripts

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SchemaStatements returns the DDL statements for the given database type, in file order.
func SchemaStatements(dbType string) ([]string, error) {

	content, err := schemaFS.ReadFile("schema/" + dbType + ".sql")
	if err != nil {
		return nil, fmt.Errorf("no schema for database type %q: %w", dbType, err)
	}

	var statements []string
	for _, statement := range strings.Split(string(content), ";") {
		var lines []string
		for _, line := range strings.Split(statement, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		statement = strings.TrimSpace(strings.Join(lines, "\n"))
		if statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements, nil
}
