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

import "sync"

// PhonebookRuntime holds the runtime configuration for the phonebook server.
type PhonebookRuntime struct {
	PhonebookHome string `yaml:"phonebook_home"`
	Config        Config `yaml:"config"`
}

var (
	runtimeConfig *PhonebookRuntime
	once          sync.Once
)

// InitializePhonebookRuntime applies defaults, validates and installs the configuration.
// Only the first successful call has an effect.
func InitializePhonebookRuntime(phonebookHome string, config *Config) error {

	var err error
	once.Do(func() {
		config.ApplyDefaults()
		if err = config.Validate(); err != nil {
			return
		}
		runtimeConfig = &PhonebookRuntime{
			PhonebookHome: phonebookHome,
			Config:        *config,
		}
	})

	return err
}

// GetPhonebookRuntime returns the PhonebookRuntime configuration.
func GetPhonebookRuntime() *PhonebookRuntime {

	if runtimeConfig == nil {
		panic("PhonebookRuntime is not initialized")
	}
	return runtimeConfig
}
