package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateEntryRequest_TracksPresence(t *testing.T) {
	var request UpdateEntryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"building":"","valid_from":null,"room":"A1-101"}`), &request))

	assert.Equal(t, OptionalString{Set: true, Value: ""}, request.Building)
	assert.Equal(t, OptionalString{Set: true, Value: ""}, request.ValidFrom)
	assert.Equal(t, Some("A1-101"), request.Room)
	assert.False(t, request.Name.Set)
	assert.False(t, request.ValidUntil.Set)
}

func TestUpdateEntryRequest_RejectsNonStrings(t *testing.T) {
	var request UpdateEntryRequest
	assert.Error(t, json.Unmarshal([]byte(`{"phone":4711}`), &request))
}

func TestOwnerRef_IsSet(t *testing.T) {
	assert.False(t, OwnerRef{}.IsSet())
	assert.False(t, OwnerRef{Kind: OwnerPerson}.IsSet())
	assert.True(t, OwnerRef{Kind: OwnerOrgUnit, ID: "o1"}.IsSet())
}
