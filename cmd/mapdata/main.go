package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	mapdata "github.com/vlk-jan/path-planning"
)

var (
	coordsSource = flag.String("coords-type", "file", "Kind of coordinate input. Expected values: file (GPX track)")
	trackFile    = flag.String("track", "track.gpx", "Filename of the GPX track with waypoints")
	configFile   = flag.String("config", "", "Filename of optional TOML configuration (rule tables, margins, Overpass endpoint)")
	outPrefix    = flag.String("out", "map_features", "Prefix of output files. E.g.: prefix 'map_features' produces 'map_features_roads', 'map_features_footways' and 'map_features_barriers'")
	geomFormat   = flag.String("geomf", "geojson", "Format of output geometry. Expected values: wkt / geojson")
	flip         = flag.Bool("flip", false, "Reverse the waypoint order of the track?")
	verbose      = flag.Bool("verbose", true, "Print progress?")
	loadRaw      = flag.String("load-raw", "", "Filename of a raw-data snapshot to replay instead of querying Overpass")
	saveRaw      = flag.String("save-raw", "", "Filename to save the raw query results to")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Reject unknown input kinds before any network or pipeline work.
	if *coordsSource != "file" {
		return fmt.Errorf("Unknown coords-type '%s'", *coordsSource)
	}

	cfg := mapdata.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = mapdata.LoadConfig(*configFile)
		if err != nil {
			return err
		}
	}

	md, err := mapdata.NewMapData(
		mapdata.TrackFile(*trackFile),
		mapdata.WithConfig(cfg),
		mapdata.WithFlip(*flip),
		mapdata.WithVerbose(*verbose),
	)
	if err != nil {
		return err
	}

	if *loadRaw != "" {
		if err := md.LoadRawData(*loadRaw); err != nil {
			return err
		}
	} else {
		if err := md.RunQueries(context.Background()); err != nil {
			return err
		}
	}
	if *saveRaw != "" {
		if err := md.SaveRawData(*saveRaw); err != nil {
			return err
		}
	}

	if err := md.RunParse(); err != nil {
		return err
	}

	for _, featureSet := range []struct {
		name string
		ways []*mapdata.Way
	}{
		{"roads", md.Roads()},
		{"footways", md.Footways()},
		{"barriers", md.Barriers()},
	} {
		if err := writeFeatures(featureSet.name, featureSet.ways, md); err != nil {
			return err
		}
	}
	return nil
}

func writeFeatures(name string, ways []*mapdata.Way, md *mapdata.MapData) error {
	switch strings.ToLower(*geomFormat) {
	case "geojson":
		collection, err := mapdata.FeaturesToGeoJSON(ways, md.Projector())
		if err != nil {
			return err
		}
		data, err := collection.MarshalJSON()
		if err != nil {
			return err
		}
		return os.WriteFile(fmt.Sprintf("%s_%s.geojson", *outPrefix, name), data, 0644)
	case "wkt":
		file, err := os.Create(fmt.Sprintf("%s_%s.csv", *outPrefix, name))
		if err != nil {
			return err
		}
		defer file.Close()
		writer := csv.NewWriter(file)
		defer writer.Flush()
		writer.Comma = ';'
		if err := writer.Write([]string{"way_id", "role", "is_area", "geom"}); err != nil {
			return err
		}
		for _, way := range ways {
			record := []string{
				strconv.FormatInt(int64(way.ID), 10),
				way.Role.String(),
				strconv.FormatBool(way.IsArea),
				mapdata.PrepareWKTGeometry(way),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("Unknown geometry format '%s'", *geomFormat)
	}
}
