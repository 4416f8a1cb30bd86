package mapdata

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

func newTestMapData(t *testing.T) *MapData {
	t.Helper()
	projector, err := NewProjectorForZone(Zone{Number: 33, Letter: 'U'})
	if err != nil {
		t.Fatalf("Can not prepare projector: %v", err)
	}
	return &MapData{
		cfg:        DefaultConfig(),
		rules:      DefaultRuleTables(),
		projector:  projector,
		ways:       make(map[osm.WayID]*Way),
		wayNodeIDs: make(map[osm.NodeID]struct{}),
	}
}

// testNode spreads nodes along a parallel so geometries are non-degenerate
func testNode(id osm.NodeID) Node {
	return Node{ID: id, Lat: 50.0, Lon: 15.0 + float64(id)*0.0001, Tags: Tags{}}
}

func (mapData *MapData) addTestWay(id osm.WayID, tags Tags, nodeIDs ...osm.NodeID) *Way {
	nodes := make([]Node, 0, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		nodes = append(nodes, testNode(nodeID))
	}
	if tags == nil {
		tags = Tags{}
	}
	way := &Way{ID: id, Nodes: nodes, IsArea: nodeIDs[0] == nodeIDs[len(nodeIDs)-1], Tags: tags}
	way.rebuildGeometry(mapData.projector)
	mapData.ways[id] = way
	return way
}

func nodeIDSequence(way *Way) []osm.NodeID {
	ids := make([]osm.NodeID, 0, len(way.Nodes))
	for _, node := range way.Nodes {
		ids = append(ids, node.ID)
	}
	return ids
}

func TestCombineChain(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, nil, 1, 2)
	mapData.addTestWay(2, nil, 2, 3)

	merged := mapData.combineWays([]osm.WayID{1, 2})
	if len(merged) != 1 {
		t.Fatalf("Merged worklist should hold 1 way, but got %d", len(merged))
	}
	way := mapData.ways[merged[0]]
	sequence := nodeIDSequence(way)
	correct := []osm.NodeID{1, 2, 3}
	if len(sequence) != len(correct) {
		t.Fatalf("Fused way should have %d nodes, but got %d", len(correct), len(sequence))
	}
	for i := range correct {
		if sequence[i] != correct[i] {
			t.Errorf("Node at position %d should be %d, but got %d", i, correct[i], sequence[i])
		}
	}
	if way.IsArea {
		t.Errorf("Open chain should not become an area")
	}
	line, ok := way.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("Open chain should carry polyline geometry, but got %T", way.Geometry)
	}
	if len(line) != 3 {
		t.Errorf("Polyline should have 3 points, but got %d", len(line))
	}
}

func TestCombineCycleClosure(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, Tags{"surface": "gravel", "name": "a"}, 1, 2)
	mapData.addTestWay(2, Tags{"name": "b"}, 2, 3)
	mapData.addTestWay(3, Tags{"width": "2"}, 3, 1)

	merged := mapData.combineWays([]osm.WayID{1, 2, 3})
	if len(merged) != 1 {
		t.Fatalf("Cycle should collapse to 1 way, but got %d", len(merged))
	}
	way := mapData.ways[merged[0]]
	if !way.IsArea {
		t.Errorf("Ring closed by fusion should be an area")
	}
	if _, ok := way.Geometry.(orb.Polygon); !ok {
		t.Errorf("Ring closed by fusion should carry polygon geometry, but got %T", way.Geometry)
	}
	sequence := nodeIDSequence(way)
	correct := []osm.NodeID{1, 2, 3, 1}
	if len(sequence) != len(correct) {
		t.Fatalf("Fused ring should visit %v, but got %v", correct, sequence)
	}
	for i := range correct {
		if sequence[i] != correct[i] {
			t.Fatalf("Fused ring should visit %v, but got %v", correct, sequence)
		}
	}
	for key, correctValue := range map[string]string{"surface": "gravel", "name": "b", "width": "2"} {
		if got := way.Tags.Get(key); got != correctValue {
			t.Errorf("Tag '%s' should be '%s', but got '%s'", key, correctValue, got)
		}
	}
}

func TestCombineIdempotence(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, nil, 1, 2)
	mapData.addTestWay(2, nil, 2, 3)
	mapData.addTestWay(3, nil, 10, 11)

	merged := mapData.combineWays([]osm.WayID{1, 2, 3})
	if len(merged) != 2 {
		t.Fatalf("First merge should yield 2 ways, but got %d", len(merged))
	}
	mergedAgain := mapData.combineWays(merged)
	if len(mergedAgain) != len(merged) {
		t.Fatalf("Second merge should not fuse further: %d ways became %d", len(merged), len(mergedAgain))
	}
	for i := range merged {
		if merged[i] != mergedAgain[i] {
			t.Errorf("Second merge changed id at position %d: %d became %d", i, merged[i], mergedAgain[i])
		}
	}
}

func TestCombineOrientationNormalization(t *testing.T) {
	mapData := newTestMapData(t)
	// Both ways start at the shared node 2; the first must be reversed.
	mapData.addTestWay(1, nil, 2, 1)
	mapData.addTestWay(2, nil, 2, 3)

	merged := mapData.combineWays([]osm.WayID{1, 2})
	if len(merged) != 1 {
		t.Fatalf("Ways sharing a head node should fuse, but got %d ways", len(merged))
	}
	sequence := nodeIDSequence(mapData.ways[merged[0]])
	correct := []osm.NodeID{1, 2, 3}
	for i := range correct {
		if sequence[i] != correct[i] {
			t.Fatalf("Fused way should visit %v, but got %v", correct, sequence)
		}
	}
}

func TestCombineTailNormalization(t *testing.T) {
	mapData := newTestMapData(t)
	// Both ways end at the shared node 2; the second must be reversed.
	mapData.addTestWay(1, nil, 1, 2)
	mapData.addTestWay(2, nil, 3, 2)

	merged := mapData.combineWays([]osm.WayID{1, 2})
	if len(merged) != 1 {
		t.Fatalf("Ways sharing a tail node should fuse, but got %d ways", len(merged))
	}
	sequence := nodeIDSequence(mapData.ways[merged[0]])
	correct := []osm.NodeID{1, 2, 3}
	for i := range correct {
		if sequence[i] != correct[i] {
			t.Fatalf("Fused way should visit %v, but got %v", correct, sequence)
		}
	}
}

func TestCombineAreaExcluded(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, nil, 1, 2, 3, 1)
	mapData.addTestWay(2, nil, 1, 5)

	merged := mapData.combineWays([]osm.WayID{1, 2})
	if len(merged) != 2 {
		t.Errorf("Area way should never fuse, but worklist shrank to %d", len(merged))
	}
}

func TestCombineDisjoint(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, nil, 1, 2)
	mapData.addTestWay(2, nil, 3, 4)

	merged := mapData.combineWays([]osm.WayID{1, 2})
	if len(merged) != 2 {
		t.Errorf("Disjoint ways should stay separate, but got %d ways", len(merged))
	}
}

func TestCombineTagOverlayPrecedence(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, Tags{"name": "a", "surface": "gravel"}, 1, 2)
	mapData.addTestWay(2, Tags{"name": "b"}, 2, 3)

	merged := mapData.combineWays([]osm.WayID{1, 2})
	way := mapData.ways[merged[0]]
	if got := way.Tags.Get("name"); got != "b" {
		t.Errorf("Second way's value should win on collision: should be 'b', but got '%s'", got)
	}
	if got := way.Tags.Get("surface"); got != "gravel" {
		t.Errorf("Non-overlapping key should be preserved: should be 'gravel', but got '%s'", got)
	}
}

func TestCombineKeepsSourceEntries(t *testing.T) {
	mapData := newTestMapData(t)
	mapData.addTestWay(1, nil, 1, 2)
	mapData.addTestWay(2, nil, 2, 3)

	mapData.combineWays([]osm.WayID{1, 2})
	if _, ok := mapData.ways[1]; !ok {
		t.Errorf("Unfused store entries should survive merging")
	}
	if _, ok := mapData.ways[2]; !ok {
		t.Errorf("Unfused store entries should survive merging")
	}
}

func TestSyntheticIDUniqueness(t *testing.T) {
	mapData := newTestMapData(t)
	// Occupy the first candidate id so the allocator must skip it.
	mapData.addTestWay(-1, nil, 7, 8)

	first := mapData.nextSyntheticID()
	second := mapData.nextSyntheticID()
	if first >= 0 || second >= 0 {
		t.Errorf("Synthetic ids should be negative, but got %d and %d", first, second)
	}
	if first == -1 || second == -1 {
		t.Errorf("Allocator should skip occupied id -1, but returned it")
	}
	if first == second {
		t.Errorf("Synthetic ids should be distinct, but got %d twice", first)
	}
}
