package mapdata

import (
	"sort"

	"github.com/paulmach/osm"
)

// separateWays partitions the resolved way store plus the synthesized
// obstacles into the three disjoint output sets. A way matching none of the
// predicates is dropped from the planning-relevant output. Ways are visited
// in ascending id order so the output ordering is stable.
func (mapData *MapData) separateWays() {
	ids := make([]osm.WayID, 0, len(mapData.ways))
	for id := range mapData.ways {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		way := mapData.ways[id]
		switch {
		case matchTagRules(way.Tags, mapData.rules.Road, nil):
			mapData.roads = append(mapData.roads, way)
		case matchTagRules(way.Tags, mapData.rules.Footway, nil):
			mapData.footways = append(mapData.footways, way)
		case mapData.isBarrier(way):
			mapData.barriers = append(mapData.barriers, way)
		}
	}

	mapData.barriers = append(mapData.barriers, mapData.obstacles...)
}

// isBarrier reports whether the way is impassable: it matches the barrier
// table (with not-barrier exclusions) and is not an opening listed in the
// anti-barrier table.
func (mapData *MapData) isBarrier(way *Way) bool {
	if !matchTagRules(way.Tags, mapData.rules.Barrier, mapData.rules.NotBarrier) {
		return false
	}
	return !matchTagRules(way.Tags, mapData.rules.AntiBarrier, nil)
}
