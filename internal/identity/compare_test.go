package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	t.Run("uppercases and collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "RAJESH SHARMA", NormalizeName("  rajesh   sharma "))
	})

	t.Run("strips honorific tokens", func(t *testing.T) {
		assert.Equal(t, "ANITA DESAI", NormalizeName("Smt Anita Desai"))
		assert.Equal(t, "ARUN MEHTA", NormalizeName("Dr. Arun Mehta"))
	})

	t.Run("strips KUMAR as honorific", func(t *testing.T) {
		assert.Equal(t, "RAJESH SHARMA", NormalizeName("RAJESH KUMAR SHARMA"))
	})

	t.Run("strips non-alphabetic characters", func(t *testing.T) {
		assert.Equal(t, "OBRIEN", NormalizeName("O'Brien"))
		assert.Equal(t, "RAVI VERMA", NormalizeName("Ravi Verma-2"))
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizeName(""))
	})
}

func TestFuzzyNameMatch(t *testing.T) {
	t.Run("identical after normalization scores 100", func(t *testing.T) {
		// Honorific stripping removes KUMAR from both sides.
		assert.Equal(t, 100, FuzzyNameMatch("RAJESH KUMAR SHARMA", "Rajesh Sharma"))
	})

	t.Run("empty input scores 0", func(t *testing.T) {
		assert.Equal(t, 0, FuzzyNameMatch("", "Rajesh Sharma"))
		assert.Equal(t, 0, FuzzyNameMatch("Rajesh Sharma", ""))
	})

	t.Run("name normalizing to empty scores 0", func(t *testing.T) {
		assert.Equal(t, 0, FuzzyNameMatch("Mr.", "Rajesh Sharma"))
	})

	t.Run("token overlap handles word reordering", func(t *testing.T) {
		assert.Equal(t, 100, FuzzyNameMatch("Amit Sharma Patel", "Patel Amit Sharma"))
	})

	t.Run("close variants reach the match threshold", func(t *testing.T) {
		score := FuzzyNameMatch("Rajesh Sharma", "Rajesh Sharmaa")
		assert.GreaterOrEqual(t, score, MatchThreshold)
	})

	t.Run("unrelated names stay below the threshold", func(t *testing.T) {
		score := FuzzyNameMatch("Rajesh Sharma", "Priya Nair")
		assert.Less(t, score, MatchThreshold)
	})
}

func TestExactMatch(t *testing.T) {
	assert.True(t, ExactMatch(" 1990-05-14 ", "1990-05-14"))
	assert.True(t, ExactMatch("male", "MALE"))
	assert.False(t, ExactMatch("1990-05-14", "1990-05-15"))
	assert.False(t, ExactMatch("", "1990-05-14"))
	assert.False(t, ExactMatch("1990-05-14", ""))
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "12 MG RD BANGALORE 560001", NormalizeAddress("12, M.G. Road, Bangalore - 560001"))
	assert.Equal(t, "FLAT 4B SEC 21 NOIDA", NormalizeAddress("Flat 4B, Sector 21, Noida"))
	assert.Equal(t, "", NormalizeAddress(""))
}

func TestAddressSimilarity(t *testing.T) {
	t.Run("same address with formatting noise is full", func(t *testing.T) {
		got := AddressSimilarity("12, M.G. Road, Bangalore - 560001", "12 MG RD BANGALORE 560001")
		assert.Equal(t, AddressMatchFull, got)
	})

	t.Run("shared key tokens boost to at least partial", func(t *testing.T) {
		got := AddressSimilarity("Green Meadows, Gurgaon 122001", "122001 Gurgaon, Meadows Green Apartment")
		assert.Contains(t, []AddressMatch{AddressMatchFull, AddressMatchPartial}, got)
	})

	t.Run("unrelated addresses are none", func(t *testing.T) {
		got := AddressSimilarity("12 MG Road Delhi", "987 Marine Drive Kochi")
		assert.Equal(t, AddressMatchNone, got)
	})

	t.Run("missing side is not_provided", func(t *testing.T) {
		assert.Equal(t, AddressMatchNotProvided, AddressSimilarity("", "12 MG Road"))
		assert.Equal(t, AddressMatchNotProvided, AddressSimilarity("12 MG Road", ""))
	})
}

func TestSequenceRatio(t *testing.T) {
	assert.InDelta(t, 1.0, sequenceRatio("RAJESH", "RAJESH"), 1e-9)
	assert.InDelta(t, 0.0, sequenceRatio("ABC", "XYZ"), 1e-9)
	// 2*M/(la+lb) with M=5, the "RAJES" block
	assert.InDelta(t, 10.0/12.0, sequenceRatio("RAJESH", "RAJESX"), 1e-9)
	assert.InDelta(t, 0.0, sequenceRatio("", ""), 1e-9)
}

func TestSimilarity(t *testing.T) {
	// no honorific stripping: KUMAR stays, so the raw strings differ
	assert.InDelta(t, 100.0, Similarity("rajesh  sharma", "RAJESH SHARMA"), 1e-9)
	assert.Less(t, Similarity("RAJESH KUMAR SHARMA", "Rajesh Sharma"), 100.0)
	assert.InDelta(t, 0.0, Similarity("", "RAJESH"), 1e-9)
	// 2*15/(19+15): "RAJESH K" and " SHARMA" blocks
	assert.InDelta(t, 30.0/34.0*100, Similarity("RAJESH KUMAR SHARMA", "RAJESH K SHARMA"), 1e-9)
}

func TestCompare(t *testing.T) {
	got := Compare(
		"Rajesh Kumar Sharma", "RAJESH SHARMA",
		"1990-05-14", "1990-05-14",
		"12 MG Road Bangalore 560001", "12, M.G. Road, Bangalore 560001",
	)

	assert.True(t, got.NameMatch)
	assert.Equal(t, 100, got.NameScore)
	assert.True(t, got.DOBMatch)
	assert.Equal(t, AddressMatchFull, got.AddressMatch)
}
