package mapdata

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestZoneDetection(t *testing.T) {
	cases := []struct {
		lat, lon float64
		correct  string
	}{
		{50.08804, 14.42076, "33U"}, // Prague
		{60.0, 4.0, "32V"},          // Norway exception
		{78.0, 20.0, "33X"},         // Svalbard exception
		{-33.92487, 18.42406, "34H"}, // Cape Town, southern hemisphere
	}
	for _, c := range cases {
		projector, err := NewProjector(c.lat, c.lon)
		if err != nil {
			t.Fatalf("Can not prepare projector for (%f, %f): %v", c.lat, c.lon, err)
		}
		if got := projector.Zone().String(); got != c.correct {
			t.Errorf("Zone for (%f, %f) should be %s, but got %s", c.lat, c.lon, c.correct, got)
		}
	}
}

func TestZoneOutOfRange(t *testing.T) {
	if _, err := NewProjector(85.5, 10.0); err == nil {
		t.Errorf("Latitude beyond the projectable range should be rejected")
	}
	if _, err := NewProjector(-81.0, 10.0); err == nil {
		t.Errorf("Latitude beyond the projectable range should be rejected")
	}
	if _, err := NewProjectorForZone(Zone{Number: 61, Letter: 'U'}); err == nil {
		t.Errorf("Zone number beyond 60 should be rejected")
	}
	if _, err := NewProjectorForZone(Zone{Number: 33, Letter: 'I'}); err == nil {
		t.Errorf("Zone letter 'I' should be rejected")
	}
}

func TestProjectCentralMeridian(t *testing.T) {
	projector, err := NewProjectorForZone(Zone{Number: 31, Letter: 'N'})
	if err != nil {
		t.Fatalf("Can not prepare projector: %v", err)
	}
	// The equator intersection with the central meridian maps exactly onto
	// the false easting.
	pt := projector.Project(0.0, 3.0)
	if math.Abs(pt.X()-falseEasting) > 1e-6 {
		t.Errorf("Easting on the central meridian should be %f, but got %f", falseEasting, pt.X())
	}
	if math.Abs(pt.Y()) > 1e-6 {
		t.Errorf("Northing on the equator should be 0, but got %f", pt.Y())
	}
}

func TestProjectKnownPoint(t *testing.T) {
	projector, err := NewProjector(50.08804, 14.42076)
	if err != nil {
		t.Fatalf("Can not prepare projector: %v", err)
	}
	pt := projector.Project(50.08804, 14.42076)
	// Coarse check against the published UTM position of Prague (33U).
	if math.Abs(pt.X()-458600) > 2000 {
		t.Errorf("Easting should be near 458600, but got %f", pt.X())
	}
	if math.Abs(pt.Y()-5548500) > 2000 {
		t.Errorf("Northing should be near 5548500, but got %f", pt.Y())
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	projector, err := NewProjector(50.0, 14.5)
	if err != nil {
		t.Fatalf("Can not prepare projector: %v", err)
	}
	for lat := 49.5; lat <= 50.5; lat += 0.25 {
		for lon := 13.5; lon <= 15.5; lon += 0.5 {
			gp := projector.Unproject(projector.Project(lat, lon))
			if math.Abs(gp.Lat-lat) > 1e-6 || math.Abs(gp.Lon-lon) > 1e-6 {
				t.Errorf("Round trip of (%f, %f) drifted to (%f, %f)", lat, lon, gp.Lat, gp.Lon)
			}
		}
	}
}

func TestProjectionRoundTripSouthern(t *testing.T) {
	projector, err := NewProjector(-33.92487, 18.42406)
	if err != nil {
		t.Fatalf("Can not prepare projector: %v", err)
	}
	pt := projector.Project(-33.92487, 18.42406)
	if pt.Y() < 0 {
		t.Errorf("Southern hemisphere northing should carry the false northing offset, but got %f", pt.Y())
	}
	gp := projector.Unproject(pt)
	if math.Abs(gp.Lat-(-33.92487)) > 1e-6 || math.Abs(gp.Lon-18.42406) > 1e-6 {
		t.Errorf("Round trip drifted to (%f, %f)", gp.Lat, gp.Lon)
	}
}

func TestProjectionDeterminism(t *testing.T) {
	projector, err := NewProjector(50.0, 14.5)
	if err != nil {
		t.Fatalf("Can not prepare projector: %v", err)
	}
	first := projector.Project(50.123456, 14.654321)
	second := projector.Project(50.123456, 14.654321)
	if first != second {
		t.Errorf("Projection should be deterministic: %v != %v", first, second)
	}
}

func TestPointToCircleRadius(t *testing.T) {
	center := orb.Point{1000.0, 2000.0}
	radius := 2.0
	polygon := pointToCircle(center, radius)
	ring := polygon[0]
	if ring[0] != ring[len(ring)-1] {
		t.Errorf("Circle ring should be closed")
	}
	for _, pt := range ring {
		if math.Abs(findDistance(pt, center)-radius) > 1e-9 {
			t.Errorf("Ring point %v should lie at distance %f from the center, but got %f", pt, radius, findDistance(pt, center))
		}
	}
}
