package pownode

import mapset "github.com/deckarep/golang-set"

// Guard names one stage of the publishing pipeline (§4.7).
type Guard string

const (
	GuardConsensus  Guard = "consensus"
	GuardSummarized Guard = "summarized"
	GuardFinalized  Guard = "finalized"
)

// guards wraps a mapset.Set for membership so the publishing state machine
// can add, check, and clear its three stages as set operations rather than
// three separate booleans (§9's "guards as a bitset/ordered set" design
// note); it also keeps an insertion-order slice alongside, since mapset.Set
// itself has no defined iteration order and the status endpoint wants a
// stable one.
type guards struct {
	set   mapset.Set
	order []Guard
}

func newGuards() *guards {
	return &guards{set: mapset.NewSet()}
}

func (g *guards) has(guard Guard) bool {
	return g.set.Contains(guard)
}

func (g *guards) add(guard Guard) {
	if g.set.Add(guard) {
		g.order = append(g.order, guard)
	}
}

func (g *guards) remove(guard Guard) {
	g.set.Remove(guard)
	for i, v := range g.order {
		if v == guard {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

func (g *guards) clear() {
	g.set.Clear()
	g.order = nil
}

func (g *guards) snapshot() []Guard {
	out := make([]Guard, len(g.order))
	copy(out, g.order)
	return out
}
