package mapdata

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// WGS84 ellipsoid and Transverse Mercator series terms (Snyder, USGS PP 1395).
const (
	utmK0 = 0.9996
	utmE  = 0.00669438
	utmE2 = utmE * utmE
	utmE3 = utmE2 * utmE
	utmR  = 6378137.0

	utmEP2 = utmE / (1 - utmE)

	utmM1 = 1 - utmE/4 - 3*utmE2/64 - 5*utmE3/256
	utmM2 = 3*utmE/8 + 3*utmE2/32 + 45*utmE3/1024
	utmM3 = 15*utmE2/256 + 45*utmE3/1024
	utmM4 = 35 * utmE3 / 3072

	falseEasting      = 500000.0
	falseNorthing     = 10000000.0
	zoneLetters       = "CDEFGHJKLMNPQRSTUVWXX"
	minProjectableLat = -80.0
	maxProjectableLat = 84.0
)

// Rectifying latitude series terms, derived from the ellipsoid constants.
var (
	utmSqrtE = math.Sqrt(1 - utmE)
	utmEI    = (1 - utmSqrtE) / (1 + utmSqrtE)
	utmEI2   = utmEI * utmEI
	utmEI3   = utmEI2 * utmEI
	utmEI4   = utmEI3 * utmEI
	utmEI5   = utmEI4 * utmEI

	utmP2 = 3.0/2*utmEI - 27.0/32*utmEI3 + 269.0/512*utmEI5
	utmP3 = 21.0/16*utmEI2 - 55.0/32*utmEI4
	utmP4 = 151.0/96*utmEI3 - 417.0/128*utmEI5
	utmP5 = 1097.0 / 512 * utmEI4
)

// Zone identifies a UTM grid zone: longitudinal number 1-60 plus the latitude
// band letter (C-X, skipping I and O).
type Zone struct {
	Number int
	Letter byte
}

// String returns pretty printed value for Zone, e.g. "33U"
func (z Zone) String() string {
	return fmt.Sprintf("%d%c", z.Number, z.Letter)
}

// northern reports whether the zone lies in the northern hemisphere
func (z Zone) northern() bool {
	return z.Letter >= 'N'
}

func (z Zone) validate() error {
	if z.Number < 1 || z.Number > 60 {
		return errors.Errorf("zone number %d out of range [1, 60]", z.Number)
	}
	if z.Letter < 'C' || z.Letter > 'X' || z.Letter == 'I' || z.Letter == 'O' {
		return errors.Errorf("zone letter '%c' out of range [C, X]", z.Letter)
	}
	return nil
}

// zoneNumberFor returns the UTM zone number for given geographic coordinates,
// including the Norway and Svalbard grid exceptions.
func zoneNumberFor(lat, lon float64) int {
	if 56 <= lat && lat < 64 && 3 <= lon && lon < 12 {
		return 32
	}
	if 72 <= lat && lat <= 84 && lon >= 0 {
		switch {
		case lon < 9:
			return 31
		case lon < 21:
			return 33
		case lon < 33:
			return 35
		case lon < 42:
			return 37
		}
	}
	number := int((lon+180)/6) + 1
	if number > 60 {
		number = 60
	}
	return number
}

// zoneLetterFor returns the latitude band letter for given latitude.
func zoneLetterFor(lat float64) (byte, error) {
	if lat < minProjectableLat || lat > maxProjectableLat {
		return 0, errors.Errorf("latitude %f out of projectable range [%.0f, %.0f]", lat, minProjectableLat, maxProjectableLat)
	}
	idx := int(math.Floor((lat + 80) / 8))
	if idx >= len(zoneLetters) {
		idx = len(zoneLetters) - 1
	}
	return zoneLetters[idx], nil
}

// centralLongitude returns the central meridian of given zone number (degrees)
func centralLongitude(zoneNumber int) float64 {
	return float64((zoneNumber-1)*6 - 180 + 3)
}

// Projector converts geographic WGS84 coordinates to planar UTM coordinates
// and back. The zone is fixed at construction and reused for every conversion
// of the run; feeding coordinates of another zone is a caller error and yields
// distorted values.
type Projector struct {
	zone Zone
}

// NewProjector prepares a projector with the zone established from the given
// geographic point (typically the first track waypoint).
func NewProjector(lat, lon float64) (*Projector, error) {
	letter, err := zoneLetterFor(lat)
	if err != nil {
		return nil, errors.Wrap(err, "establish zone")
	}
	if lon < -180 || lon > 180 {
		return nil, errors.Errorf("longitude %f out of range [-180, 180]", lon)
	}
	return &Projector{zone: Zone{Number: zoneNumberFor(lat, lon), Letter: letter}}, nil
}

// NewProjectorForZone prepares a projector for an explicitly given zone,
// bypassing zone detection (pre-projected array input).
func NewProjectorForZone(zone Zone) (*Projector, error) {
	if err := zone.validate(); err != nil {
		return nil, err
	}
	return &Projector{zone: zone}, nil
}

// Zone returns the zone the projector operates in.
func (p *Projector) Zone() Zone {
	return p.zone
}

// Project converts given geographic coordinates to planar easting/northing
// (meters) within the projector's zone.
func (p *Projector) Project(lat, lon float64) orb.Point {
	latRad := degreesToRadians(lat)
	latSin, latCos := math.Sincos(latRad)
	latTan := latSin / latCos
	latTan2 := latTan * latTan
	latTan4 := latTan2 * latTan2

	n := utmR / math.Sqrt(1-utmE*latSin*latSin)
	c := utmEP2 * latCos * latCos

	a := latCos * modAngle(degreesToRadians(lon)-degreesToRadians(centralLongitude(p.zone.Number)))
	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	m := utmR * (utmM1*latRad - utmM2*math.Sin(2*latRad) + utmM3*math.Sin(4*latRad) - utmM4*math.Sin(6*latRad))

	easting := utmK0*n*(a+
		a3/6*(1-latTan2+c)+
		a5/120*(5-18*latTan2+latTan4+72*c-58*utmEP2)) + falseEasting
	northing := utmK0 * (m + n*latTan*(a2/2+
		a4/24*(5-latTan2+9*c+4*c*c)+
		a6/720*(61-58*latTan2+latTan4+600*c-330*utmEP2)))
	if !p.zone.northern() {
		northing += falseNorthing
	}
	return orb.Point{easting, northing}
}

// Unproject converts planar easting/northing within the projector's zone back
// to geographic coordinates. Inverse of Project within projection tolerance.
func (p *Projector) Unproject(pt orb.Point) GeoPoint {
	x := pt.X() - falseEasting
	y := pt.Y()
	if !p.zone.northern() {
		y -= falseNorthing
	}

	m := y / utmK0
	mu := m / (utmR * utmM1)

	pRad := mu + utmP2*math.Sin(2*mu) + utmP3*math.Sin(4*mu) + utmP4*math.Sin(6*mu) + utmP5*math.Sin(8*mu)
	pSin, pCos := math.Sincos(pRad)
	pSin2 := pSin * pSin
	pTan := pSin / pCos
	pTan2 := pTan * pTan
	pTan4 := pTan2 * pTan2

	epSin := 1 - utmE*pSin2
	n := utmR / math.Sqrt(epSin)
	r := (1 - utmE) / epSin

	c := utmEP2 * pCos * pCos
	c2 := c * c

	d := x / (n * utmK0)
	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	lat := pRad - (pTan/r)*(d2/2-
		d4/24*(5+3*pTan2+10*c-4*c2-9*utmEP2)+
		d6/720*(61+90*pTan2+298*c+45*pTan4-252*utmEP2-3*c2))
	lon := modAngle((d-
		d3/6*(1+2*pTan2+c)+
		d5/120*(5-2*c+28*pTan2-3*c2+8*utmEP2+24*pTan4))/pCos +
		degreesToRadians(centralLongitude(p.zone.Number)))

	return GeoPoint{Lat: radiansToDegrees(lat), Lon: radiansToDegrees(lon)}
}

// modAngle normalizes an angle in radians to (-pi, pi]
func modAngle(value float64) float64 {
	for value <= -math.Pi {
		value += 2 * math.Pi
	}
	for value > math.Pi {
		value -= 2 * math.Pi
	}
	return value
}
