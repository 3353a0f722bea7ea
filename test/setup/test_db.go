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

package setup

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"github.com/wso2/identity-phonebook-service/internal/system/database/provider"
	"github.com/wso2/identity-phonebook-service/internal/system/database/scripts"
)

// TestDatabase contains the running container and DB connection
type TestDatabase struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
}

// SetupTestDB spins up a Postgres container and applies the phonebook schema.
func SetupTestDB(ctx context.Context) (*TestDatabase, error) {
	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := applySchema(ctx, db, constants.DBTypePostgres); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &TestDatabase{
		Container: container,
		DB:        db,
	}, nil
}

// Teardown closes the connection and stops the container.
func (t *TestDatabase) Teardown() error {
	_ = t.DB.Close()
	return t.Container.Terminate(context.Background())
}

// SetupSQLite creates an empty phonebook database in a temporary file and
// installs it as the process-wide pool. The pool is closed when the test ends.
func SetupSQLite(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "phonebook.db")
	db, err := sql.Open("sqlite3", provider.SQLiteDSN(path))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	// One connection keeps the pragmas and the schema on the same handle.
	db.SetMaxOpenConns(1)

	if err := applySchema(context.Background(), db, constants.DBTypeSQLite); err != nil {
		_ = db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	provider.SetTestDB(db, constants.DBTypeSQLite)
	t.Cleanup(func() {
		_ = provider.Close()
	})
	return db
}

func applySchema(ctx context.Context, db *sql.DB, dbType string) error {
	statements, err := scripts.SchemaStatements(dbType)
	if err != nil {
		return err
	}
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
	}
	return nil
}
