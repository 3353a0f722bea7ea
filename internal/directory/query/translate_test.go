package query

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
)

var asOf = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func testParams() Params {
	return Params{
		Term:             "Meier",
		VisibleStates:    []string{"yes", "always"},
		LeadershipGroups: []string{"Leitung", "Direktorium"},
		AsOf:             asOf,
	}
}

func TestTranslate_UnknownDialect(t *testing.T) {
	_, err := Translate(Compose([]model.Dimension{model.Room}, nil), "oracle", testParams())
	assert.Error(t, err)
}

func TestTranslate_SQLite_PlaceholdersMatchArgs(t *testing.T) {
	plan := Compose([]model.Dimension{model.PersonName, model.PhoneNumber, model.OrgUnitName, model.Room,
		model.OrgUnitLeadership}, []string{"Leitung"})
	statements, err := Translate(plan, "sqlite", testParams())
	require.NoError(t, err)
	require.Len(t, statements, 4)

	for _, st := range statements {
		assert.Equal(t, strings.Count(st.SQL, "?"), len(st.Args), "source %s", st.Source)
		assert.NotContains(t, st.SQL, "ILIKE")
	}
}

func TestTranslate_Postgres_NumberedPlaceholders(t *testing.T) {
	plan := Compose([]model.Dimension{model.Room}, nil)
	statements, err := Translate(plan, "postgres", testParams())
	require.NoError(t, err)

	person := statements[0]
	assert.Equal(t, SourcePerson, person.Source)
	assert.Contains(t, person.SQL, "WHERE (m.room ILIKE $1) AND a.visible IN ($2, $3) AND (m.phone IS NOT NULL AND m.phone <> '')")
	assert.Equal(t, []interface{}{"%Meier%", "yes", "always"}, person.Args)
}

func TestTranslate_ManualEntry_ValidityIsAnded(t *testing.T) {
	plan := Compose([]model.Dimension{model.PhoneNumber}, nil)
	statements, err := Translate(plan, "postgres", testParams())
	require.NoError(t, err)

	manual := statements[len(statements)-1]
	require.Equal(t, SourceManualEntry, manual.Source)
	assert.True(t, strings.HasSuffix(manual.SQL,
		"WHERE (p.phone ILIKE $1) AND ((p.valid_from IS NULL OR p.valid_from <= $2) AND (p.valid_until IS NULL OR p.valid_until >= $3))"))
	assert.Equal(t, []interface{}{"%Meier%", asOf, asOf}, manual.Args)
}

func TestTranslate_Leadership_GroupsBoundBeforeNames(t *testing.T) {
	plan := Compose([]model.Dimension{model.OrgUnitLeadership}, []string{"Leitung", "Direktorium"})
	statements, err := Translate(plan, "sqlite", testParams())
	require.NoError(t, err)

	orgUnit := statements[2]
	require.Equal(t, SourceOrgUnit, orgUnit.Source)
	assert.Contains(t, orgUnit.SQL, "o.org_unit_id IN (SELECT lm.org_unit_id FROM org_unit_member lm")
	assert.Contains(t, orgUnit.SQL, "lg.name IN (?, ?)")
	assert.Equal(t, []interface{}{"Leitung", "Direktorium", "%Meier%", "%Meier%", "%Meier%", "%Meier%", "%Meier%"},
		orgUnit.Args)
}

func TestTranslate_LikeConcat(t *testing.T) {
	plan := Plan{Branches: []Branch{{
		Source:     SourceRangePerson,
		Projection: []string{"a.person_id AS id"},
		From:       "person a",
		Predicates: []Predicate{LikeConcat("a.first_name", "a.last_name")},
	}}}
	statements, err := Translate(plan, "sqlite", testParams())
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT DISTINCT a.person_id AS id FROM person a WHERE ((COALESCE(a.first_name, '') || ' ' || COALESCE(a.last_name, '')) LIKE ?)",
		statements[0].SQL)
}

func TestTranslate_EmptyVisibility_MatchesNothing(t *testing.T) {
	params := testParams()
	params.VisibleStates = nil
	statements, err := Translate(RangePlan(), "sqlite", params)
	require.NoError(t, err)
	assert.Contains(t, statements[0].SQL, "AND 1 = 0")
}

func TestTranslate_SkipsBranchWithoutPredicates(t *testing.T) {
	plan := Plan{Branches: []Branch{orgUnitBranch()}}
	statements, err := Translate(plan, "sqlite", testParams())
	require.NoError(t, err)
	assert.Empty(t, statements)
}
