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

// Package validity decides whether a manual entry is inside its activation window.
package validity

import "time"

// IsActive reports whether an entry with the given window is active at asOf.
// Both bounds are inclusive and either may be unset.
func IsActive(from, until *time.Time, asOf time.Time) bool {

	switch {
	case from == nil && until == nil:
		return true
	case from == nil:
		return !asOf.After(*until)
	case until == nil:
		return !from.After(asOf)
	default:
		return !from.After(asOf) && !asOf.After(*until)
	}
}

// Window names the columns holding an activation window.
type Window struct {
	FromColumn  string
	UntilColumn string
}

// Condition renders the SQL equivalent of IsActive for the window columns.
// placeholder is called once per bound parameter and must return the marker
// for the next argument; every marker binds asOf.
func (w Window) Condition(placeholder func() string) string {

	return "((" + w.FromColumn + " IS NULL OR " + w.FromColumn + " <= " + placeholder() + ")" +
		" AND (" + w.UntilColumn + " IS NULL OR " + w.UntilColumn + " >= " + placeholder() + "))"
}
