package powwork

import (
	"bytes"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		digest []byte
		want   uint32
	}{
		{"all zero", bytes.Repeat([]byte{0x00}, 32), 256},
		{"leading 0x80", prepend(0x80), 0},
		{"leading 0x40", prepend(0x40), 1},
		{"leading 0x01", prepend(0x01), 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Score(c.digest))
		})
	}
}

func prepend(b byte) []byte {
	digest := bytes.Repeat([]byte{0x00}, 32)
	digest[0] = b
	return digest
}

func TestScoreAllZeroByteSkipsToNext(t *testing.T) {
	digest := append([]byte{0x00, 0x00}, bytes.Repeat([]byte{0xff}, 30)...)
	require.Equal(t, uint32(16), Score(digest))
}

func TestIsValidAgreesWithScore(t *testing.T) {
	hash := Hash([]byte("block"), []byte("peer"), 42)
	score := Score(hash[:])

	valid, realized := IsValid(hash[:], score)
	assert.True(t, valid)
	assert.Equal(t, score, realized)

	valid, realized = IsValid(hash[:], score+1)
	assert.False(t, valid)
	assert.Equal(t, score, realized)
}

func TestHashIsDeterministic(t *testing.T) {
	a := Hash([]byte("block"), []byte("peer"), 7)
	b := Hash([]byte("block"), []byte("peer"), 7)
	assert.Equal(t, a, b)

	c := Hash([]byte("block"), []byte("peer"), 8)
	assert.NotEqual(t, a, c)
}

// TestScoreIsBoundedAcrossRandomDigests fuzzes the digest input rather than
// hand-picking boundary cases, checking the two invariants Score and IsValid
// must hold for any 32-byte SHA-256 output: the score never exceeds the
// all-zero maximum, and IsValid(digest, score) is always true for a digest's
// own score.
func TestScoreIsBoundedAcrossRandomDigests(t *testing.T) {
	f := fuzz.New().NilChance(0).Seed(1)

	for i := 0; i < 200; i++ {
		var digest [32]byte
		f.Fuzz(&digest)

		score := Score(digest[:])
		require.LessOrEqual(t, score, uint32(256))

		valid, realized := IsValid(digest[:], score)
		assert.True(t, valid)
		assert.Equal(t, score, realized)
	}
}
