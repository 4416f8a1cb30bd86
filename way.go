package mapdata

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// MemberRole marks the multipolygon role a way got from a relation.
type MemberRole uint16

const (
	ROLE_UNSET = MemberRole(iota)
	ROLE_OUTER
	ROLE_INNER
)

func (iotaIdx MemberRole) String() string {
	return [...]string{"unset", "outer", "inner"}[iotaIdx]
}

// Way is an ordered sequence of nodes with a planar geometry derived from
// them: a polyline for open ways, a polygon for closed rings. Tags is never
// nil. Ways produced by endpoint fusion carry a synthetic (negative) ID.
type Way struct {
	ID       osm.WayID
	Nodes    []Node
	IsArea   bool
	Geometry orb.Geometry
	Tags     Tags
	Role     MemberRole
}

func (way *Way) firstNodeID() osm.NodeID {
	return way.Nodes[0].ID
}

func (way *Way) lastNodeID() osm.NodeID {
	return way.Nodes[len(way.Nodes)-1].ID
}

// reverse flips the traversal order of the way in place. Geometry is rebuilt
// by the caller via rebuildGeometry to keep it derived from the node order.
func (way *Way) reverse(projector *Projector) {
	for i, j := 0, len(way.Nodes)-1; i < j; i, j = i+1, j-1 {
		way.Nodes[i], way.Nodes[j] = way.Nodes[j], way.Nodes[i]
	}
	way.rebuildGeometry(projector)
}

// rebuildGeometry re-derives the planar geometry from the projected node
// sequence. Closed ways materialize as polygons, open ways as polylines.
func (way *Way) rebuildGeometry(projector *Projector) {
	line := make(orb.LineString, 0, len(way.Nodes))
	for i := range way.Nodes {
		line = append(line, projector.Project(way.Nodes[i].Lat, way.Nodes[i].Lon))
	}
	if way.IsArea {
		ring := orb.Ring(line)
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}
		way.Geometry = orb.Polygon{ring}
		return
	}
	way.Geometry = line
}
