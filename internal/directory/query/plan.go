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

// Package query builds structured search plans over the directory sources and
// renders them to the SQL dialect of the configured database.
package query

import (
	"slices"
	"time"
)

// Kind identifies what a predicate tests.
type Kind int

const (
	// KindLike matches a single column against the search pattern.
	KindLike Kind = iota
	// KindLikeConcat matches the space separated concatenation of its columns.
	KindLikeConcat
	// KindInLeadership matches when the column holds an org unit led by a matching person.
	KindInLeadership
	// KindNotEmpty requires the column to be neither NULL nor blank.
	KindNotEmpty
	// KindInVisibility requires the column to hold one of the visible states.
	KindInVisibility
	// KindActive requires the validity window in Columns[0], Columns[1] to contain the reference time.
	KindActive
)

// Predicate is a single structured condition over one or more columns.
type Predicate struct {
	Kind    Kind
	Columns []string
}

func Like(column string) Predicate {
	return Predicate{Kind: KindLike, Columns: []string{column}}
}

func LikeConcat(columns ...string) Predicate {
	return Predicate{Kind: KindLikeConcat, Columns: columns}
}

func InLeadership(column string) Predicate {
	return Predicate{Kind: KindInLeadership, Columns: []string{column}}
}

func NotEmpty(column string) Predicate {
	return Predicate{Kind: KindNotEmpty, Columns: []string{column}}
}

func InVisibility(column string) Predicate {
	return Predicate{Kind: KindInVisibility, Columns: []string{column}}
}

func Active(fromColumn, untilColumn string) Predicate {
	return Predicate{Kind: KindActive, Columns: []string{fromColumn, untilColumn}}
}

func (p Predicate) equal(other Predicate) bool {
	return p.Kind == other.Kind && slices.Equal(p.Columns, other.Columns)
}

// Source names the data source a branch reads.
type Source string

const (
	SourcePerson        Source = "person"
	SourcePersonalPhone Source = "personalPhone"
	SourceOrgUnit       Source = "orgUnit"
	SourceManualEntry   Source = "manualEntry"
	SourceRangePerson   Source = "rangePerson"
	SourceRangeOrgUnit  Source = "rangeOrgUnit"
)

// Branch is the plan for one source: a projection over a join set, selected
// by the OR of Predicates and restricted by the AND of Filters.
type Branch struct {
	Source     Source
	Projection []string
	From       string
	Joins      []string
	Predicates []Predicate
	Filters    []Predicate
}

// Match OR-appends predicates, skipping ones already present.
func (b *Branch) Match(predicates ...Predicate) {
	for _, p := range predicates {
		if !slices.ContainsFunc(b.Predicates, p.equal) {
			b.Predicates = append(b.Predicates, p)
		}
	}
}

// Plan is an ordered set of branches whose results are concatenated.
type Plan struct {
	Branches []Branch
}

// Branch returns the branch reading the given source.
func (p Plan) Branch(source Source) (Branch, bool) {
	for _, b := range p.Branches {
		if b.Source == source {
			return b, true
		}
	}
	return Branch{}, false
}

// Sources lists the sources of the plan in order.
func (p Plan) Sources() []Source {
	sources := make([]Source, 0, len(p.Branches))
	for _, b := range p.Branches {
		sources = append(sources, b.Source)
	}
	return sources
}

// Params are the values shared by every branch of a plan.
type Params struct {
	// Term is the raw search term; it is wrapped in wildcards when bound.
	Term             string
	VisibleStates    []string
	LeadershipGroups []string
	AsOf             time.Time
}

// SearchPattern is the LIKE pattern bound for Term.
func (p Params) SearchPattern() string {
	return "%" + p.Term + "%"
}
