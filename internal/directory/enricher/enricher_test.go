package enricher

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/identity-phonebook-service/internal/avatar"
	"github.com/wso2/identity-phonebook-service/internal/directory/model"
	"github.com/wso2/identity-phonebook-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeResolver struct {
	custom map[string]bool
	fail   map[string]bool
}

func (f fakeResolver) Resolve(_ context.Context, sourceKind, id string) (avatar.Picture, error) {
	if f.fail[id] {
		return avatar.Picture{}, errors.New("disk on fire")
	}
	if f.custom[id] {
		return avatar.Picture{URL: "/pictures/" + id + "_medium.png", Custom: true}, nil
	}
	return avatar.Picture{URL: "/pictures/nobody_medium.png"}, nil
}

func TestEnrich(t *testing.T) {
	e := NewEnricher(fakeResolver{custom: map[string]bool{"p1": true}, fail: map[string]bool{"o9": true}},
		"https://studip.example.org/")

	records := []model.DirectoryRecord{
		{ID: "p1", SourceKind: "person", LoginHandle: "emeier"},
		{ID: "o1", SourceKind: "orgUnit"},
		{ID: "7", SourceKind: "manualEntry"},
		{ID: "o9", SourceKind: "orgUnit"},
	}
	enriched := e.Enrich(context.Background(), records)
	require.Len(t, enriched, 4)

	assert.Equal(t, "p1", enriched[0].ID)
	require.NotNil(t, enriched[0].PictureRef)
	assert.True(t, enriched[0].IsCustomPicture)
	assert.Equal(t, "https://studip.example.org/dispatch.php/profile?username=emeier", enriched[0].ProfileLink)

	require.NotNil(t, enriched[1].PictureRef)
	assert.False(t, enriched[1].IsCustomPicture)
	assert.Equal(t, "https://studip.example.org/dispatch.php/institute/overview?cid=o1", enriched[1].ProfileLink)

	assert.Nil(t, enriched[2].PictureRef)
	assert.False(t, enriched[2].IsCustomPicture)
	assert.Empty(t, enriched[2].ProfileLink)

	assert.Nil(t, enriched[3].PictureRef, "lookup errors degrade to no picture")
}

func TestEnrich_UnknownKindPanics(t *testing.T) {
	e := NewEnricher(fakeResolver{}, "")
	assert.Panics(t, func() {
		e.Enrich(context.Background(), []model.DirectoryRecord{{ID: "x", SourceKind: "course"}})
	})
}
