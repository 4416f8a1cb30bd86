package mapdata

import (
	"github.com/paulmach/osm"
)

// Node is a single OSM node. Never mutated after ingestion.
type Node struct {
	ID   osm.NodeID
	Lat  float64
	Lon  float64
	Tags Tags
}
