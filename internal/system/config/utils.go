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

package config

import (
	"fmt"
	"os"
	"path"

	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads deployment.yaml below phonebookHome, expanding ${ENV} references first.
// Unknown keys are rejected.
func LoadConfig(phonebookHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(phonebookHome, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.UnmarshalStrict([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OverridePhonebookRuntime replaces the runtime configuration. Tests use it to run
// without a deployment.yaml.
func OverridePhonebookRuntime(conf Config) {
	conf.ApplyDefaults()
	runtimeConfig = &PhonebookRuntime{
		Config: conf,
	}
}

// Validate reports settings that would only fail once the server is serving traffic.
// It expects ApplyDefaults to have run.
func (c *Config) Validate() error {

	switch c.DataSource.Type {
	case constants.DBTypePostgres:
		if c.DataSource.Hostname == "" || c.DataSource.Name == "" {
			return fmt.Errorf("datasource: hostname and name are required for postgres")
		}
	case constants.DBTypeSQLite:
		if c.DataSource.Path == "" {
			return fmt.Errorf("datasource: path is required for sqlite")
		}
	default:
		return fmt.Errorf("datasource: unsupported type %q", c.DataSource.Type)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth: jwt_secret is required")
	}
	pb := c.Phonebook
	if pb.MaxLimit > 0 && pb.MaxLimit < pb.DefaultLimit {
		return fmt.Errorf("phonebook: max_limit %d is below default_limit %d", pb.MaxLimit, pb.DefaultLimit)
	}
	return nil
}
