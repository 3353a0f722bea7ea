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

package scripts

const entryColumns = `entry_id, name, owner_kind, owner_id, phone, note, building, room, external_id, creator,
       created_at, updated_at, valid_from, valid_until`

var InsertEntry = map[string]string{
	"postgres": `INSERT INTO phonebook_entry (name, owner_kind, owner_id, phone, note, building, room, external_id, creator,
        created_at, updated_at, valid_from, valid_until)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING entry_id`,
	"sqlite": `INSERT INTO phonebook_entry (name, owner_kind, owner_id, phone, note, building, room, external_id, creator,
        created_at, updated_at, valid_from, valid_until)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING entry_id`,
}

var GetEntryByID = map[string]string{
	"postgres": `SELECT ` + entryColumns + ` FROM phonebook_entry WHERE entry_id = $1`,
	"sqlite":   `SELECT ` + entryColumns + ` FROM phonebook_entry WHERE entry_id = ?`,
}

var GetEntryByExternalID = map[string]string{
	"postgres": `SELECT ` + entryColumns + ` FROM phonebook_entry WHERE external_id = $1`,
	"sqlite":   `SELECT ` + entryColumns + ` FROM phonebook_entry WHERE external_id = ?`,
}

var CountEntriesByExternalID = map[string]string{
	"postgres": `SELECT COUNT(*) AS total FROM phonebook_entry WHERE external_id = $1 AND entry_id <> $2`,
	"sqlite":   `SELECT COUNT(*) AS total FROM phonebook_entry WHERE external_id = ? AND entry_id <> ?`,
}

var UpdateEntry = map[string]string{
	"postgres": `UPDATE phonebook_entry
        SET name = $1, owner_kind = $2, owner_id = $3, phone = $4, note = $5, building = $6, room = $7,
            external_id = $8, updated_at = $9, valid_from = $10, valid_until = $11
        WHERE entry_id = $12`,
	"sqlite": `UPDATE phonebook_entry
        SET name = ?, owner_kind = ?, owner_id = ?, phone = ?, note = ?, building = ?, room = ?,
            external_id = ?, updated_at = ?, valid_from = ?, valid_until = ?
        WHERE entry_id = ?`,
}

var DeleteEntry = map[string]string{
	"postgres": `DELETE FROM phonebook_entry WHERE entry_id = $1`,
	"sqlite":   `DELETE FROM phonebook_entry WHERE entry_id = ?`,
}

var GetPersonByID = map[string]string{
	"postgres": `SELECT person_id, username, first_name, last_name, title_front, title_rear FROM person WHERE person_id = $1`,
	"sqlite":   `SELECT person_id, username, first_name, last_name, title_front, title_rear FROM person WHERE person_id = ?`,
}

var GetPersonByUsername = map[string]string{
	"postgres": `SELECT person_id, username, first_name, last_name, title_front, title_rear FROM person WHERE username = $1`,
	"sqlite":   `SELECT person_id, username, first_name, last_name, title_front, title_rear FROM person WHERE username = ?`,
}

var GetOrgUnitByID = map[string]string{
	"postgres": `SELECT org_unit_id, name FROM org_unit WHERE org_unit_id = $1`,
	"sqlite":   `SELECT org_unit_id, name FROM org_unit WHERE org_unit_id = ?`,
}

var CountMemberships = map[string]string{
	"postgres": `SELECT COUNT(*) AS total FROM org_unit_member WHERE person_id = $1 AND org_unit_id = $2`,
	"sqlite":   `SELECT COUNT(*) AS total FROM org_unit_member WHERE person_id = ? AND org_unit_id = ?`,
}

var UpsertMemberNote = map[string]string{
	"postgres": `INSERT INTO member_note (person_id, org_unit_id, content) VALUES ($1, $2, $3)
        ON CONFLICT (person_id, org_unit_id) DO UPDATE SET content = excluded.content`,
	"sqlite": `INSERT INTO member_note (person_id, org_unit_id, content) VALUES (?, ?, ?)
        ON CONFLICT (person_id, org_unit_id) DO UPDATE SET content = excluded.content`,
}

var DeleteMemberNote = map[string]string{
	"postgres": `DELETE FROM member_note WHERE person_id = $1 AND org_unit_id = $2`,
	"sqlite":   `DELETE FROM member_note WHERE person_id = ? AND org_unit_id = ?`,
}

var UpsertPersonalPhone = map[string]string{
	"postgres": `INSERT INTO personal_phone (person_id, number) VALUES ($1, $2)
        ON CONFLICT (person_id) DO UPDATE SET number = excluded.number`,
	"sqlite": `INSERT INTO personal_phone (person_id, number) VALUES (?, ?)
        ON CONFLICT (person_id) DO UPDATE SET number = excluded.number`,
}

var DeletePersonalPhone = map[string]string{
	"postgres": `DELETE FROM personal_phone WHERE person_id = $1`,
	"sqlite":   `DELETE FROM personal_phone WHERE person_id = ?`,
}

var GetConfigValue = map[string]string{
	"postgres": `SELECT value FROM phonebook_config WHERE config_key = $1`,
	"sqlite":   `SELECT value FROM phonebook_config WHERE config_key = ?`,
}

var UpsertConfigValue = map[string]string{
	"postgres": `INSERT INTO phonebook_config (config_key, value) VALUES ($1, $2)
        ON CONFLICT (config_key) DO UPDATE SET value = excluded.value`,
	"sqlite": `INSERT INTO phonebook_config (config_key, value) VALUES (?, ?)
        ON CONFLICT (config_key) DO UPDATE SET value = excluded.value`,
}

var GetRoleGroupNames = map[string]string{
	"postgres": `SELECT DISTINCT name FROM role_group WHERE name <> '' ORDER BY name`,
	"sqlite":   `SELECT DISTINCT name FROM role_group WHERE name <> '' ORDER BY name`,
}

// ProbeSchema fails when the phonebook tables have not been created.
var ProbeSchema = map[string]string{
	"postgres": `SELECT 1 FROM phonebook_entry LIMIT 1`,
	"sqlite":   `SELECT 1 FROM phonebook_entry LIMIT 1`,
}
