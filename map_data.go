package mapdata

import (
	"context"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// TrackSource seeds a run with waypoints and the projection zone. Exactly two
// kinds exist: a GPX track file and a pre-projected in-memory array.
type TrackSource interface {
	resolve(verbose bool) ([]orb.Point, *Projector, error)
}

// TrackFile is a GPX file of ordered geographic waypoints. The projection
// zone is established from the first waypoint.
type TrackFile string

func (track TrackFile) resolve(verbose bool) ([]orb.Point, *Projector, error) {
	geoPoints, err := WaypointsFromGPX(string(track))
	if err != nil {
		return nil, nil, err
	}
	projector, err := NewProjector(geoPoints[0].Lat, geoPoints[0].Lon)
	if err != nil {
		return nil, nil, err
	}
	waypoints := make([]orb.Point, 0, len(geoPoints))
	for _, gp := range geoPoints {
		waypoints = append(waypoints, projector.Project(gp.Lat, gp.Lon))
	}
	if verbose {
		fmt.Printf("Read %d waypoints (%.2f km) from '%s', zone %s\n", len(geoPoints), getSphericalLength(geoPoints), string(track), projector.Zone())
	}
	return waypoints, projector, nil
}

// TrackArray is a pre-projected coordinate array with an explicit zone,
// bypassing file parsing and zone detection.
type TrackArray struct {
	Points []orb.Point
	Zone   Zone
}

func (track TrackArray) resolve(verbose bool) ([]orb.Point, *Projector, error) {
	if len(track.Points) == 0 {
		return nil, nil, errors.New("Track array contains no waypoints")
	}
	projector, err := NewProjectorForZone(track.Zone)
	if err != nil {
		return nil, nil, err
	}
	waypoints := make([]orb.Point, len(track.Points))
	copy(waypoints, track.Points)
	if verbose {
		fmt.Printf("Got %d pre-projected waypoints, zone %s\n", len(waypoints), track.Zone)
	}
	return waypoints, projector, nil
}

// MapData resolves raw OSM records of a bounding region into the road,
// footway and barrier features consumed by the planner. The run is a strict
// sequence: queries fully materialize first, then ways are built, relations
// resolved, solitary nodes classified and the result separated.
type MapData struct {
	cfg       Config
	rules     *RuleTables
	projector *Projector
	region    BoundingRegion
	waypoints []orb.Point
	client    *OverpassClient

	verbose       bool
	flip          bool
	robotPosition *GeoPoint

	rawWays      *OverpassResult
	rawRelations *OverpassResult
	rawNodes     *OverpassResult

	// Authoritative way store, keyed by id. Fusion inserts the fused way and
	// re-addresses the worklist; unfused ways keep their entries.
	ways       map[osm.WayID]*Way
	wayNodeIDs map[osm.NodeID]struct{}
	mergeSeq   osm.WayID

	roads     []*Way
	footways  []*Way
	barriers  []*Way
	obstacles []*Way
}

// NewMapData prepares a run for the given track source.
func NewMapData(source TrackSource, options ...func(*MapData)) (*MapData, error) {
	if source == nil {
		return nil, errors.New("Track source is not set")
	}
	mapData := &MapData{
		cfg:        DefaultConfig(),
		ways:       make(map[osm.WayID]*Way),
		wayNodeIDs: make(map[osm.NodeID]struct{}),
	}
	for _, option := range options {
		option(mapData)
	}
	if mapData.rules == nil {
		rules, err := mapData.cfg.RuleTables()
		if err != nil {
			return nil, err
		}
		mapData.rules = rules
	}

	waypoints, projector, err := source.resolve(mapData.verbose)
	if err != nil {
		return nil, err
	}
	if mapData.flip {
		for i, j := 0, len(waypoints)-1; i < j; i, j = i+1, j-1 {
			waypoints[i], waypoints[j] = waypoints[j], waypoints[i]
		}
	}
	if mapData.robotPosition != nil {
		position := projector.Project(mapData.robotPosition.Lat, mapData.robotPosition.Lon)
		waypoints = append([]orb.Point{position}, waypoints...)
	}
	mapData.waypoints = waypoints
	mapData.projector = projector

	region, err := NewBoundingRegion(waypoints, projector, mapData.cfg.Reserve, mapData.cfg.QueryMargin)
	if err != nil {
		return nil, err
	}
	mapData.region = region
	mapData.client = NewOverpassClient(mapData.cfg, mapData.verbose)
	return mapData, nil
}

// WithVerbose enables progress reporting to stdout.
func WithVerbose(verbose bool) func(*MapData) {
	return func(mapData *MapData) {
		mapData.verbose = verbose
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) func(*MapData) {
	return func(mapData *MapData) {
		mapData.cfg = cfg
	}
}

// WithRules replaces the rule tables resolved from the configuration.
func WithRules(rules *RuleTables) func(*MapData) {
	return func(mapData *MapData) {
		mapData.rules = rules
	}
}

// WithFlip reverses the waypoint order of the track.
func WithFlip(flip bool) func(*MapData) {
	return func(mapData *MapData) {
		mapData.flip = flip
	}
}

// WithRobotPosition prepends the current robot position as the first
// waypoint of the track.
func WithRobotPosition(lat, lon float64) func(*MapData) {
	return func(mapData *MapData) {
		mapData.robotPosition = &GeoPoint{Lat: lat, Lon: lon}
	}
}

// RunQueries obtains the raw OSM records for the bounding region: ways,
// relations referencing them and candidate solitary nodes. All three queries
// must succeed before any parse stage may run.
func (mapData *MapData) RunQueries(ctx context.Context) error {
	st := time.Now()
	if mapData.verbose {
		fmt.Printf("Running 1/3 OSM query...\n")
	}
	rawWays, err := mapData.client.Query(ctx, WayQuery(mapData.region))
	if err != nil {
		return errors.Wrap(err, "Way query")
	}
	mapData.rawWays = rawWays

	if mapData.verbose {
		fmt.Printf("Running 2/3 OSM query...\n")
	}
	rawRelations, err := mapData.client.Query(ctx, RelationQuery(mapData.region))
	if err != nil {
		return errors.Wrap(err, "Relation query")
	}
	mapData.rawRelations = rawRelations

	if mapData.verbose {
		fmt.Printf("Running 3/3 OSM query...\n")
	}
	rawNodes, err := mapData.client.Query(ctx, NodeQuery(mapData.region))
	if err != nil {
		return errors.Wrap(err, "Node query")
	}
	mapData.rawNodes = rawNodes

	if mapData.verbose {
		fmt.Printf("Queries finished in %v\n", time.Since(st))
	}
	return nil
}

// RunParse resolves the raw query results into the separated feature sets.
// Stages run strictly in order; each consumes only fully materialized output
// of its predecessors.
func (mapData *MapData) RunParse() error {
	if mapData.rawWays == nil || mapData.rawRelations == nil || mapData.rawNodes == nil {
		return errors.New("Queries have not been run (or loaded) yet")
	}
	st := time.Now()
	if mapData.verbose {
		fmt.Printf("Running analysis...\n")
	}
	if err := mapData.parseWays(); err != nil {
		return errors.Wrap(err, "Parse ways")
	}
	mapData.parseRelations()
	mapData.parseNodes()
	mapData.separateWays()
	if mapData.verbose {
		fmt.Printf("Analysis finished in %v: %d roads, %d footways, %d barriers\n", time.Since(st), len(mapData.roads), len(mapData.footways), len(mapData.barriers))
	}
	return nil
}

// Waypoints returns the projected track waypoints in traversal order.
func (mapData *MapData) Waypoints() []orb.Point {
	return mapData.waypoints
}

// Region returns the bounding region of the run.
func (mapData *MapData) Region() BoundingRegion {
	return mapData.region
}

// Projector returns the run's coordinate projector.
func (mapData *MapData) Projector() *Projector {
	return mapData.projector
}

// Roads returns the resolved drivable ways.
func (mapData *MapData) Roads() []*Way {
	return mapData.roads
}

// Footways returns the resolved foot-traversable ways.
func (mapData *MapData) Footways() []*Way {
	return mapData.footways
}

// Barriers returns the resolved impassable ways and obstacle areas.
func (mapData *MapData) Barriers() []*Way {
	return mapData.barriers
}
