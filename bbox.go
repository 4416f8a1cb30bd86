package mapdata

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// BoundingRegion is the planar extent of the track padded by the reserve
// margin, together with the geographic query box padded by an additional
// margin. Computed once from the waypoint set and never mutated.
type BoundingRegion struct {
	MinX, MinY float64
	MaxX, MaxY float64

	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// NewBoundingRegion computes the region from projected waypoints. Reserve
// pads the planar box, queryMargin additionally pads the geographic box used
// for the region queries (both meters).
func NewBoundingRegion(waypoints []orb.Point, projector *Projector, reserve, queryMargin float64) (BoundingRegion, error) {
	if len(waypoints) == 0 {
		return BoundingRegion{}, errors.New("Can not compute bounding region without waypoints")
	}
	region := BoundingRegion{
		MinX: waypoints[0].X(), MaxX: waypoints[0].X(),
		MinY: waypoints[0].Y(), MaxY: waypoints[0].Y(),
	}
	for _, pt := range waypoints[1:] {
		if pt.X() < region.MinX {
			region.MinX = pt.X()
		}
		if pt.X() > region.MaxX {
			region.MaxX = pt.X()
		}
		if pt.Y() < region.MinY {
			region.MinY = pt.Y()
		}
		if pt.Y() > region.MaxY {
			region.MaxY = pt.Y()
		}
	}
	region.MinX -= reserve
	region.MinY -= reserve
	region.MaxX += reserve
	region.MaxY += reserve

	minGeo := projector.Unproject(orb.Point{region.MinX - queryMargin, region.MinY - queryMargin})
	maxGeo := projector.Unproject(orb.Point{region.MaxX + queryMargin, region.MaxY + queryMargin})
	region.MinLat, region.MinLon = minGeo.Lat, minGeo.Lon
	region.MaxLat, region.MaxLon = maxGeo.Lat, maxGeo.Lon
	return region, nil
}

// geoBBox returns the geographic query box formatted for Overpass QL:
// south, west, north, east.
func (region BoundingRegion) geoBBox() string {
	return fmt.Sprintf("%f, %f, %f, %f", region.MinLat, region.MinLon, region.MaxLat, region.MaxLon)
}
