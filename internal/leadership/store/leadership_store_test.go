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

package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
	"github.com/wso2/identity-phonebook-service/test/setup"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestLeadershipStore(t *testing.T) {
	db := setup.SetupSQLite(t)
	require.NoError(t, setup.SeedDirectory(context.Background(), db))
	s := NewLeadershipStore()
	ctx := context.Background()

	groups, err := s.GetGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	require.NoError(t, s.SaveGroups(ctx, []string{"Leitung", "Direktorium"}))
	groups, err = s.GetGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Leitung", "Direktorium"}, groups)

	require.NoError(t, s.SaveGroups(ctx, nil))
	groups, err = s.GetGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)

	available, err := s.AvailableGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Leitung", "Mitarbeiter"}, available)
}
