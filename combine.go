package mapdata

import (
	"github.com/paulmach/osm"
)

// combineWays exhaustively fuses pairs of non-area ways of the worklist that
// share an endpoint, until no pair fuses anymore. Returns the ids of the
// resulting ways. Fused ways are inserted into the store under fresh
// synthetic ids; the source entries stay in the store but leave the worklist.
func (mapData *MapData) combineWays(ids []osm.WayID) []osm.WayID {
	worklist := make([]osm.WayID, len(ids))
	copy(worklist, ids)

	for {
		fused := false
	scan:
		for i := 0; i < len(worklist); i++ {
			for j := 0; j < len(worklist); j++ {
				if i == j {
					continue
				}
				first := mapData.ways[worklist[i]]
				second := mapData.ways[worklist[j]]
				if first.IsArea || second.IsArea {
					continue
				}

				// Normalize orientation so that a shared endpoint becomes
				// "first's tail meets second's head".
				if first.firstNodeID() == second.firstNodeID() {
					first.reverse(mapData.projector)
				} else if first.lastNodeID() == second.lastNodeID() {
					second.reverse(mapData.projector)
				}
				if first.lastNodeID() != second.firstNodeID() {
					continue
				}

				fusedWay := mapData.fuseWays(first, second)
				// The fused way replaces both sources in the worklist; the
				// scan restarts on the reduced worklist since fusion cascades.
				worklist[j] = fusedWay.ID
				worklist = append(worklist[:i], worklist[i+1:]...)
				fused = true
				break scan
			}
		}
		if !fused {
			return worklist
		}
	}
}

// fuseWays synthesizes the fusion of two ways joined at first's tail and
// second's head. The junction node appears once, second's tags win on key
// collision and a ring closed by the fusion becomes an area.
func (mapData *MapData) fuseWays(first, second *Way) *Way {
	nodes := make([]Node, 0, len(first.Nodes)+len(second.Nodes)-1)
	nodes = append(nodes, first.Nodes...)
	nodes = append(nodes, second.Nodes[1:]...)

	fusedWay := &Way{
		ID:    mapData.nextSyntheticID(),
		Nodes: nodes,
		Tags:  first.Tags.Clone().Overlay(second.Tags),
	}
	if fusedWay.firstNodeID() == fusedWay.lastNodeID() {
		fusedWay.IsArea = true
	}
	fusedWay.rebuildGeometry(mapData.projector)
	mapData.ways[fusedWay.ID] = fusedWay
	return fusedWay
}

// nextSyntheticID returns a fresh way id distinct from every id in the store.
// Synthetic ids count down from -1 so they can never collide with
// OSM-assigned ids; the occupancy check keeps the guarantee even if the
// store ever holds foreign negative ids.
func (mapData *MapData) nextSyntheticID() osm.WayID {
	for {
		mapData.mergeSeq--
		if _, taken := mapData.ways[mapData.mergeSeq]; !taken {
			return mapData.mergeSeq
		}
	}
}
