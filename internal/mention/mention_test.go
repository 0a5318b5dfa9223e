package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/model"
)

func directory() []model.User {
	return []model.User{
		{ID: "u1", Name: "Ana Soylu"},
		{ID: "u2", Name: "Deniz Kana"},
		{ID: "u3", Name: "Mert Demir"},
		{ID: "u4", Name: "Okan Anar"},
	}
}

func TestExtract_SubstringFanOut(t *testing.T) {
	// "ana" is contained in "Ana Soylu", "Deniz Kana", and "Okan Anar":
	// every containing user resolves, not just an exact-name match.
	ids := Extract("ping @ana please review", directory())
	assert.Equal(t, []string{"u1", "u2", "u4"}, ids)
}

func TestExtract_SingleMatch(t *testing.T) {
	ids := Extract("@mert can you take this", directory())
	assert.Equal(t, []string{"u3"}, ids)
}

func TestExtract_CaseInsensitive(t *testing.T) {
	ids := Extract("@MERT @Demir", directory())
	assert.Equal(t, []string{"u3", "u3"}, ids)
}

// Two tokens resolving to the same user keep both occurrences; the
// dedup that one might expect here is deliberately absent, and
// downstream fan-out produces one notification per occurrence.
func TestExtract_DuplicatesPreserved(t *testing.T) {
	ids := Extract("@mert and again @mert", directory())
	assert.Equal(t, []string{"u3", "u3"}, ids)
}

func TestExtract_UnknownTokenIgnored(t *testing.T) {
	ids := Extract("hello @nobody and @mert", directory())
	assert.Equal(t, []string{"u3"}, ids)
}

func TestExtract_NoTokens(t *testing.T) {
	assert.Empty(t, Extract("no mentions here", directory()))
	assert.Empty(t, Extract("", directory()))
}

func TestUnion_MergesWithoutDoubleCounting(t *testing.T) {
	got := Union([]string{"u1", "u2"}, []string{"u2", "u5"})
	assert.Equal(t, []string{"u1", "u2", "u5"}, got)
}

func TestUnion_KeepsResolvedDuplicates(t *testing.T) {
	got := Union([]string{"u3", "u3"}, []string{"u3", "u4"})
	assert.Equal(t, []string{"u3", "u3", "u4"}, got)
}

func TestUnion_EmptyResolved(t *testing.T) {
	got := Union(nil, []string{"u1"})
	assert.Equal(t, []string{"u1"}, got)
}
