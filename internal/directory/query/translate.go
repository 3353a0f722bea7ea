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

package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wso2/identity-phonebook-service/internal/directory/validity"
	"github.com/wso2/identity-phonebook-service/internal/system/constants"
)

// Statement is one rendered branch, ready for execution.
type Statement struct {
	Source Source
	SQL    string
	Args   []interface{}
}

type dialect struct {
	like        string
	placeholder func(n int) string
}

var dialects = map[string]dialect{
	constants.DBTypePostgres: {
		like:        "ILIKE",
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	},
	constants.DBTypeSQLite: {
		like:        "LIKE",
		placeholder: func(int) string { return "?" },
	},
}

// Translate renders every branch of the plan to a standalone statement in the
// given dialect. Branches without predicates are skipped since they would
// match every row.
func Translate(plan Plan, dbType string, params Params) ([]Statement, error) {

	d, ok := dialects[dbType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	statements := make([]Statement, 0, len(plan.Branches))
	for _, branch := range plan.Branches {
		if len(branch.Predicates) == 0 {
			continue
		}
		w := &writer{dialect: d, params: params}
		statements = append(statements, Statement{
			Source: branch.Source,
			SQL:    w.branch(branch),
			Args:   w.args,
		})
	}
	return statements, nil
}

type writer struct {
	dialect dialect
	params  Params
	args    []interface{}
}

func (w *writer) bind(value interface{}) string {
	w.args = append(w.args, value)
	return w.dialect.placeholder(len(w.args))
}

func (w *writer) bindList(values []string) string {
	markers := make([]string, len(values))
	for i, v := range values {
		markers[i] = w.bind(v)
	}
	return strings.Join(markers, ", ")
}

func (w *writer) branch(b Branch) string {

	var sb strings.Builder
	sb.WriteString("SELECT DISTINCT ")
	sb.WriteString(strings.Join(b.Projection, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.From)
	for _, join := range b.Joins {
		sb.WriteString(" ")
		sb.WriteString(join)
	}

	matches := make([]string, len(b.Predicates))
	for i, p := range b.Predicates {
		matches[i] = w.predicate(p)
	}
	sb.WriteString(" WHERE (")
	sb.WriteString(strings.Join(matches, " OR "))
	sb.WriteString(")")

	for _, f := range b.Filters {
		sb.WriteString(" AND ")
		sb.WriteString(w.predicate(f))
	}
	return sb.String()
}

func concat(columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = "COALESCE(" + c + ", '')"
	}
	return strings.Join(parts, " || ' ' || ")
}

func (w *writer) predicate(p Predicate) string {

	switch p.Kind {
	case KindLike:
		return p.Columns[0] + " " + w.dialect.like + " " + w.bind(w.params.SearchPattern())
	case KindLikeConcat:
		return "(" + concat(p.Columns) + ") " + w.dialect.like + " " + w.bind(w.params.SearchPattern())
	case KindInLeadership:
		return p.Columns[0] + " IN (" + w.holders() + ")"
	case KindNotEmpty:
		return "(" + p.Columns[0] + " IS NOT NULL AND " + p.Columns[0] + " <> '')"
	case KindInVisibility:
		if len(w.params.VisibleStates) == 0 {
			return "1 = 0"
		}
		return p.Columns[0] + " IN (" + w.bindList(w.params.VisibleStates) + ")"
	case KindActive:
		window := validity.Window{FromColumn: p.Columns[0], UntilColumn: p.Columns[1]}
		return window.Condition(func() string { return w.bind(w.params.AsOf) })
	default:
		panic(fmt.Sprintf("query: unknown predicate kind %d", p.Kind))
	}
}

// holders selects the org units having a member in one of the leadership
// groups whose name or username matches the search term.
func (w *writer) holders() string {

	if len(w.params.LeadershipGroups) == 0 {
		return "SELECT lm.org_unit_id FROM org_unit_member lm WHERE 1 = 0"
	}

	// Markers must be bound in text order for positional placeholders.
	groups := w.bindList(w.params.LeadershipGroups)
	names := make([]string, 0, 5)
	for _, p := range personNamePredicates("lp") {
		names = append(names, w.predicate(p))
	}
	return "SELECT lm.org_unit_id FROM org_unit_member lm" +
		" JOIN person lp ON lp.person_id = lm.person_id" +
		" JOIN role_group lg ON lg.org_unit_id = lm.org_unit_id" +
		" JOIN role_group_member lgm ON lgm.role_group_id = lg.role_group_id AND lgm.person_id = lm.person_id" +
		" WHERE lg.name IN (" + groups + ")" +
		" AND (" + strings.Join(names, " OR ") + ")"
}
