package spelling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCorrector() *Corrector {
	return NewCorrector(DefaultDictionary())
}

func TestSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("bolig", "bolig"))
	assert.Equal(t, 1.0, Similarity("a", "a"))
}

func TestSimilarity_EmptyStrings(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("", "x"))
	assert.Equal(t, 0.0, Similarity("x", ""))
}

func TestSimilarity_SingleEdit(t *testing.T) {
	// one substitution over five runes
	assert.InDelta(t, 0.8, Similarity("bolig", "bolid"), 1e-9)
}

func TestSimilarity_Unicode(t *testing.T) {
	// edit distance counts runes, not bytes
	assert.InDelta(t, 0.75, Similarity("købe", "kåbe"), 1e-9)
}

func TestLevenshtein_Classic(t *testing.T) {
	assert.Equal(t, 3, levenshtein([]rune("kitten"), []rune("sitting")))
	assert.Equal(t, 0, levenshtein([]rune("abc"), []rune("abc")))
	assert.Equal(t, 3, levenshtein([]rune(""), []rune("abc")))
	assert.Equal(t, 2, levenshtein([]rune("flaw"), []rune("lawn")))
}

func TestSuggest_ExactTypoShortCircuits(t *testing.T) {
	c := testCorrector()
	assert.Equal(t, "bolig", c.Suggest("bolih"))
	assert.Equal(t, "bolig", c.Suggest("BOLIH"))
	assert.Equal(t, "invoice", c.Suggest("invocie"))
}

func TestSuggest_CanonicalTermGetsNoSuggestion(t *testing.T) {
	c := testCorrector()
	assert.Empty(t, c.Suggest("bolig"))
	assert.Empty(t, c.Suggest("Eiendom"))
}

func TestSuggest_ShortQueriesNeverSuggested(t *testing.T) {
	c := testCorrector()
	assert.Empty(t, c.Suggest("ap"))
	assert.Empty(t, c.Suggest("b"))
	assert.Empty(t, c.Suggest(""))
}

func TestSuggest_ThresholdIsStrict(t *testing.T) {
	c := NewCorrector(Dictionary{"bolig": nil})
	// similarity exactly 0.8 must not suggest
	assert.Empty(t, c.Suggest("bolid"))
	// similarity above 0.8 does: one edit over six runes against "boliger"? keep within dict
	c = NewCorrector(Dictionary{"kontrakt": nil})
	assert.Equal(t, "kontrakt", c.Suggest("kontrakz")) // 7/8 = 0.875
}

func TestSuggest_NoMatchReturnsEmpty(t *testing.T) {
	c := testCorrector()
	assert.Empty(t, c.Suggest("zzzzzz"))
}
