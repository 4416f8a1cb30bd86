package mapdata

import (
	"github.com/pkg/errors"
	"github.com/tkrajina/gpxgo/gpx"
)

// WaypointsFromGPX reads the ordered waypoints of a GPX track file.
func WaypointsFromGPX(fileName string) ([]GeoPoint, error) {
	gpxFile, err := gpx.ParseFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Can not parse GPX file '%s'", fileName)
	}
	return waypointsFromGPXFile(gpxFile)
}

// WaypointsFromGPXBytes reads the ordered waypoints of in-memory GPX data.
func WaypointsFromGPXBytes(data []byte) ([]GeoPoint, error) {
	gpxFile, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can not parse GPX data")
	}
	return waypointsFromGPXFile(gpxFile)
}

func waypointsFromGPXFile(gpxFile *gpx.GPX) ([]GeoPoint, error) {
	waypoints := make([]GeoPoint, 0, len(gpxFile.Waypoints))
	for _, wpt := range gpxFile.Waypoints {
		waypoints = append(waypoints, GeoPoint{Lat: wpt.Latitude, Lon: wpt.Longitude})
	}
	if len(waypoints) == 0 {
		return nil, errors.New("GPX data contains no waypoints")
	}
	return waypoints, nil
}
