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
	"time"

	"github.com/wso2/identity-phonebook-service/internal/system/constants"
)

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
	// File enables a rotated log file next to stdout.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type AuthConfig struct {
	JWTSecret          string   `yaml:"jwt_secret"`
	Audience           string   `yaml:"audience"`
	AdminPerm          string   `yaml:"admin_perm"`
	AdminRole          string   `yaml:"admin_role"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// DataSourceConfig selects the relational store. Type is "postgres" or "sqlite";
// Path is only read for sqlite.
type DataSourceConfig struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type AvatarConfig struct {
	Dir string `yaml:"dir"`
	URL string `yaml:"url"`
}

type PhonebookConfig struct {
	PhonePrefix        string       `yaml:"phone_prefix"`
	DefaultLimit       int          `yaml:"default_limit"`
	MaxLimit           int          `yaml:"max_limit"`
	AllDefaultLimit    int          `yaml:"all_default_limit"`
	VisibleStates      []string     `yaml:"visible_states"`
	Timezone           string       `yaml:"timezone"`
	BaseURL            string       `yaml:"base_url"`
	PersonalPhoneLabel string       `yaml:"personal_phone_label"`
	LeadershipCacheTTL string       `yaml:"leadership_cache_ttl"`
	Avatar             AvatarConfig `yaml:"avatar"`
}

// TracingConfig enables OTLP/HTTP span export when Endpoint is set.
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Phonebook  PhonebookConfig  `yaml:"phonebook"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

// ApplyDefaults fills every setting deployment.yaml may leave empty.
func (c *Config) ApplyDefaults() {

	if c.Log.LogLevel == "" {
		c.Log.LogLevel = "INFO"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 100
	}
	if c.DataSource.Type == "" {
		c.DataSource.Type = constants.DBTypePostgres
	}
	if c.Auth.AdminPerm == "" {
		c.Auth.AdminPerm = constants.DefaultAdminPerm
	}
	if c.Auth.AdminRole == "" {
		c.Auth.AdminRole = constants.DefaultAdminRole
	}
	pb := &c.Phonebook
	if pb.DefaultLimit <= 0 {
		pb.DefaultLimit = constants.DefaultSearchLimit
	}
	if pb.AllDefaultLimit <= 0 {
		pb.AllDefaultLimit = constants.DefaultAllLimit
	}
	if len(pb.VisibleStates) == 0 {
		pb.VisibleStates = append([]string(nil), constants.DefaultVisibleStates...)
	}
	if pb.Timezone == "" {
		pb.Timezone = constants.DefaultTimezone
	}
	if pb.PersonalPhoneLabel == "" {
		pb.PersonalPhoneLabel = constants.DefaultPersonalPhoneLabel
	}
}

// LeadershipTTL parses leadership_cache_ttl, falling back to five minutes.
func (p PhonebookConfig) LeadershipTTL() time.Duration {

	if d, err := time.ParseDuration(p.LeadershipCacheTTL); err == nil && d > 0 {
		return d
	}
	return 5 * time.Minute
}
