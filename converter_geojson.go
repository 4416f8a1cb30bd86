package mapdata

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// FeaturesToGeoJSON converts resolved ways to a GeoJSON feature collection
// in geographic coordinates. Each feature carries the way id, role and tags
// as properties.
func FeaturesToGeoJSON(ways []*Way, projector *Projector) (*geojson.FeatureCollection, error) {
	collection := geojson.NewFeatureCollection()
	for _, way := range ways {
		feature, err := wayToGeoJSONFeature(way, projector)
		if err != nil {
			return nil, err
		}
		collection.AddFeature(feature)
	}
	return collection, nil
}

func wayToGeoJSONFeature(way *Way, projector *Projector) (*geojson.Feature, error) {
	var feature *geojson.Feature
	switch geom := way.Geometry.(type) {
	case orb.LineString:
		feature = geojson.NewLineStringFeature(lineToGeographic(geom, projector))
	case orb.Polygon:
		rings := make([][][]float64, 0, len(geom))
		for _, ring := range geom {
			rings = append(rings, lineToGeographic(orb.LineString(ring), projector))
		}
		feature = geojson.NewPolygonFeature(rings)
	default:
		return nil, errors.Errorf("Unhandled geometry kind %T for way '%d'", way.Geometry, way.ID)
	}

	feature.SetProperty("id", int64(way.ID))
	if way.Role != ROLE_UNSET {
		feature.SetProperty("role", way.Role.String())
	}
	for key, value := range way.Tags {
		feature.SetProperty(key, value)
	}
	return feature, nil
}

// lineToGeographic unprojects a planar line into GeoJSON position order
// (longitude first).
func lineToGeographic(line orb.LineString, projector *Projector) [][]float64 {
	positions := make([][]float64, 0, len(line))
	for _, pt := range line {
		gp := projector.Unproject(pt)
		positions = append(positions, []float64{gp.Lon, gp.Lat})
	}
	return positions
}
