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

package provider

import (
	"database/sql"
	"fmt"
	"net/url"
	"sync"

	_ "github.com/lib/pq"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/wso2/identity-phonebook-service/internal/system/config"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/database/client"
)

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
	GetDBType() string
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct{}

var (
	mu     sync.Mutex
	pool   *sql.DB
	dbType string
)

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {

	return &DBProvider{}
}

// GetDBClient returns a client over the shared connection pool, opening the pool on first use.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {

	mu.Lock()
	defer mu.Unlock()

	if pool != nil {
		return client.NewDBClient(pool), nil
	}

	runtimeConfig := config.GetPhonebookRuntime().Config
	dbConfig, err := getDBConfig(runtimeConfig)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Test the database connection.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	pool = db
	dbType = runtimeConfig.DataSource.Type
	return client.NewDBClient(pool), nil
}

// GetDBType returns the dialect of the configured database.
func (d *DBProvider) GetDBType() string {

	mu.Lock()
	defer mu.Unlock()

	if dbType != "" {
		return dbType
	}
	return config.GetPhonebookRuntime().Config.DataSource.Type
}

// SetTestDB installs an already opened database, bypassing deployment.yaml.
func SetTestDB(db *sql.DB, databaseType string) {

	mu.Lock()
	defer mu.Unlock()

	pool = db
	dbType = databaseType
}

// Close closes the shared pool; a later GetDBClient reopens it.
func Close() error {

	mu.Lock()
	defer mu.Unlock()

	if pool == nil {
		return nil
	}
	err := pool.Close()
	pool = nil
	dbType = ""
	return err
}

// getDBConfig returns the database configuration based on the provided data source.
func getDBConfig(cfg config.Config) (DBConfig, error) {

	dataSource := cfg.DataSource
	switch dataSource.Type {
	case constants.DBTypePostgres:
		return DBConfig{
			driverName: "postgres",
			dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
				dataSource.Name, dataSource.SSLMode),
		}, nil
	case constants.DBTypeSQLite:
		return DBConfig{
			driverName: "sqlite3",
			dsn:        SQLiteDSN(dataSource.Path),
		}, nil
	default:
		return DBConfig{}, fmt.Errorf("unsupported datasource type %q", dataSource.Type)
	}
}

// SQLiteDSN builds the connection string for a database file with foreign keys and a busy timeout.
func SQLiteDSN(path string) string {
	u := url.URL{Scheme: "file", Opaque: path}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
