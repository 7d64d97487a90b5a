package powblock

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	cases := []struct {
		difficulty uint32
		nonce      uint64
		timestamp  float64
	}{
		{0, 0, 0},
		{22, 123456789, 500.555},
		{255, 18446744073709551615, 1.0},
	}
	for _, c := range cases {
		payload := SerializeConsensus(c.difficulty, c.nonce, c.timestamp)
		assert.NotContains(t, string(payload[4:]), "::")

		got, err := DeserializeConsensus(payload)
		require.NoError(t, err)

		want := BlockConsensus{Tag: [3]byte{'P', 'o', 'W'}, Difficulty: c.difficulty, Nonce: c.nonce, Timestamp: c.timestamp}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s\ngot dump:\n%s", diff, spew.Sdump(got))
		}
		assert.True(t, got.IsPoW())
	}
}

func TestDeserializeMalformedPayload(t *testing.T) {
	_, err := DeserializeConsensus([]byte("woo:1:1:1"))
	require.Error(t, err)

	consensusErr, ok := err.(*ConsensusError)
	require.True(t, ok)
	assert.Equal(t, "not-pow", consensusErr.Kind)
}

func TestDeserializeTruncatedPayload(t *testing.T) {
	_, err := DeserializeConsensus([]byte("Po"))
	require.Error(t, err)
}

func TestIsPoWConsensus(t *testing.T) {
	assert.True(t, IsPoWConsensus(SerializeConsensus(1, 2, 3)))
	assert.False(t, IsPoWConsensus([]byte("not a pow payload")))
}
