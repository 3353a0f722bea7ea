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

package setup

import (
	"context"
	"database/sql"
	"fmt"
)

// directoryFixture is a small institute: Erika Meier leads the computer
// science institute, Max Schulz works there and has a personal phone, Hans
// is hidden, and Anna Koch works in the library without a phone.
var directoryFixture = []string{
	`INSERT INTO person (person_id, username, first_name, last_name, title_front, title_rear, gender, visible) VALUES
		('p1', 'emeier', 'Erika', 'Meier', 'Dr.', '', 2, 'yes'),
		('p2', 'mschulz', 'Max', 'Schulz', '', 'M.Sc.', 1, 'always'),
		('p3', 'hhidden', 'Hans', 'Versteckt', '', '', 1, 'no'),
		('p4', 'akoch', 'Anna', 'Koch', '', '', 2, 'yes')`,
	`INSERT INTO org_unit (org_unit_id, name, phone, fax) VALUES
		('o1', 'Institut für Informatik', '0441-100', '0441-101'),
		('o2', 'Raum 10 Verwaltung', '', ''),
		('o3', 'Raum 2 Bibliothek', '0441-300', '')`,
	`INSERT INTO org_unit_member (person_id, org_unit_id, phone, fax, room) VALUES
		('p1', 'o1', '0441-111', '0441-119', 'A1-101'),
		('p2', 'o1', '0441-222', '', 'A1-102'),
		('p3', 'o1', '0441-333', '', 'A1-103'),
		('p4', 'o3', '', '', 'B-1')`,
	`INSERT INTO role_group (role_group_id, org_unit_id, name, name_male, name_female) VALUES
		('g1', 'o1', 'Leitung', 'Leiter', 'Leiterin'),
		('g2', 'o1', 'Mitarbeiter', 'Mitarbeiter', 'Mitarbeiterin'),
		('g3', 'o3', 'Mitarbeiter', 'Mitarbeiter', 'Mitarbeiterin')`,
	`INSERT INTO role_group_member (role_group_id, person_id) VALUES
		('g1', 'p1'), ('g2', 'p2'), ('g2', 'p3'), ('g3', 'p4')`,
	`INSERT INTO personal_phone (person_id, number) VALUES ('p2', '0151-555')`,
}

// SeedDirectory inserts the directory fixture. The statements carry no
// parameters so they run unchanged on every supported database.
func SeedDirectory(ctx context.Context, db *sql.DB) error {
	for _, statement := range directoryFixture {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to seed directory: %w", err)
		}
	}
	return nil
}
