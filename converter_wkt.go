package mapdata

import (
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTGeometry returns the WKT representation of the way's planar
// geometry (projected coordinates).
func PrepareWKTGeometry(way *Way) string {
	return wkt.MarshalString(way.Geometry)
}
