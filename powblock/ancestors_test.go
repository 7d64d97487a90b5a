package powblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeum/pow-consensus/powsdk"
)

// chain builds n non-genesis PoW blocks atop a genesis block, each easily
// valid at difficulty 0, and registers them on svc. Returns block ids from
// genesis (index 0) to the tip (index n).
func chain(svc *fakeService, n int) []powsdk.BlockId {
	ids := []powsdk.BlockId{powsdk.BlockId("genesis")}
	svc.put(powsdk.Block{BlockId: ids[0], BlockNum: 0})

	for i := 1; i <= n; i++ {
		id := powsdk.BlockId{byte(i)}
		svc.put(powsdk.Block{
			BlockId:    id,
			PreviousId: ids[i-1],
			BlockNum:   uint64(i),
			SignerId:   []byte("peer"),
			Payload:    SerializeConsensus(0, uint64(i), float64(i)),
		})
		ids = append(ids, id)
	}
	return ids
}

func TestAncestorsWalkIncludesStartAndStopsAtGenesis(t *testing.T) {
	svc := newFakeService()
	ids := chain(svc, 3)

	a := NewAncestors(ids[3], svc)
	headers := a.Take(10)
	require.Len(t, headers, 4) // tip, 2, 1, genesis

	assert.True(t, headers[0].BlockId.Equal(ids[3]))
	assert.True(t, headers[3].IsGenesis())
}

func TestAncestorsTerminatesOnUnknownBlock(t *testing.T) {
	svc := newFakeService()
	a := NewAncestors(powsdk.BlockId("missing"), svc)

	_, ok := a.Next()
	assert.False(t, ok)
	_, ok = a.Next()
	assert.False(t, ok)
}

func TestTakeUpToWhilePoWStopsAtNonPoW(t *testing.T) {
	svc := newFakeService()
	ids := chain(svc, 2)
	// Overwrite the tip with a non-PoW payload.
	svc.put(powsdk.Block{BlockId: ids[2], PreviousId: ids[1], BlockNum: 2, Payload: []byte("not pow")})

	headers := NewAncestors(ids[2], svc).TakeUpToWhilePoW(5)
	assert.Empty(t, headers)
}
