package mapdata

import (
	"testing"

	"github.com/paulmach/osm"
)

func TestSeparateWays(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, Tags{"highway": "residential"}, 1, 2)
	mapData.addTestWay(2, Tags{"highway": "footway"}, 3, 4)
	mapData.addTestWay(3, Tags{"barrier": "fence"}, 5, 6, 7, 5)
	mapData.addTestWay(4, Tags{"building": "yes"}, 8, 9, 10, 8)
	mapData.addTestWay(5, Tags{"tourism": "viewpoint"}, 11, 12)

	mapData.separateWays()
	if len(mapData.roads) != 1 || mapData.roads[0].ID != osm.WayID(1) {
		t.Errorf("Way 1 should be the only road")
	}
	if len(mapData.footways) != 1 || mapData.footways[0].ID != osm.WayID(2) {
		t.Errorf("Way 2 should be the only footway")
	}
	if len(mapData.barriers) != 2 {
		t.Errorf("Ways 3 and 4 should be the barriers, but got %d", len(mapData.barriers))
	}
}

func TestSeparateDisjoint(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, Tags{"highway": "residential", "barrier": "wall"}, 1, 2)
	mapData.addTestWay(2, Tags{"highway": "footway", "building": "yes"}, 3, 4)

	mapData.separateWays()
	seen := make(map[osm.WayID]int)
	for _, set := range [][]*Way{mapData.roads, mapData.footways, mapData.barriers} {
		for _, way := range set {
			seen[way.ID]++
		}
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("Way %d should appear in exactly one output set, but got %d", id, count)
		}
	}
}

func TestSeparateAntiBarrier(t *testing.T) {
	mapData := newTestMapData(t)
	// A gate matches the barrier wildcard but is an opening.
	mapData.addTestWay(1, Tags{"barrier": "gate"}, 1, 2)
	// A kerb is excluded by the not-barrier table.
	mapData.addTestWay(2, Tags{"barrier": "kerb"}, 3, 4)

	mapData.separateWays()
	if len(mapData.barriers) != 0 {
		t.Errorf("Openings and excluded values should not be barriers, but got %d", len(mapData.barriers))
	}
}

func TestSeparateAppendsObstacles(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.rawNodes = &OverpassResult{
		Nodes: []OverpassElement{
			rawNode(42, 50.0, 15.0, map[string]string{"natural": "tree"}),
		},
	}
	mapData.parseNodes()
	mapData.separateWays()
	if len(mapData.barriers) != 1 || mapData.barriers[0].ID != osm.WayID(42) {
		t.Errorf("Synthesized obstacles should end up in the barrier set")
	}
}

func TestSeparateUnmatchedDropped(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, Tags{}, 1, 2)
	mapData.addTestWay(2, Tags{"leisure": "park"}, 3, 4, 5, 3)

	mapData.separateWays()
	total := len(mapData.roads) + len(mapData.footways) + len(mapData.barriers)
	if total != 0 {
		t.Errorf("Unmatched ways should be dropped from the output, but got %d features", total)
	}
}
