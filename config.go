package mapdata

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config carries every tunable of a pipeline run: query endpoint and retry
// policy, bounding-region margins, obstacle radius and the paths of external
// rule tables. Rule-table paths left empty fall back to the compiled-in
// defaults.
type Config struct {
	OverpassURL       string  `toml:"overpass_url"`
	QueryTries        int     `toml:"query_tries"`
	QueryRetrySeconds float64 `toml:"query_retry_seconds"`
	QueryRateLimit    float64 `toml:"query_rate_limit"`

	// Margin added around the track in the projected plane (meters).
	Reserve float64 `toml:"reserve"`
	// Extra margin for the geographic query box so that ways straddling the
	// strict region boundary are still captured (meters).
	QueryMargin float64 `toml:"query_margin"`
	// Radius of the circular area synthesized around an obstacle node (meters).
	ObstacleRadius float64 `toml:"obstacle_radius"`

	ObstacleTagsFile    string `toml:"obstacle_tags_file"`
	NotObstacleTagsFile string `toml:"not_obstacle_tags_file"`
	BarrierTagsFile     string `toml:"barrier_tags_file"`
	NotBarrierTagsFile  string `toml:"not_barrier_tags_file"`
	AntiBarrierTagsFile string `toml:"anti_barrier_tags_file"`
	RoadTagsFile        string `toml:"road_tags_file"`
	FootwayTagsFile     string `toml:"footway_tags_file"`
}

// DefaultConfig returns the configuration used when no TOML file is given.
func DefaultConfig() Config {
	return Config{
		OverpassURL:       "https://overpass.kumi.systems/api/interpreter",
		QueryTries:        3,
		QueryRetrySeconds: 5.0,
		QueryRateLimit:    1.0,
		Reserve:           50.0,
		QueryMargin:       30.0,
		ObstacleRadius:    2.0,
	}
}

// LoadConfig reads a TOML configuration file on top of the defaults.
func LoadConfig(fileName string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(fileName, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "Can not read config '%s'", fileName)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.QueryTries < 1 {
		return errors.Errorf("query_tries should be positive, but got %d", cfg.QueryTries)
	}
	if cfg.ObstacleRadius <= 0 {
		return errors.Errorf("obstacle_radius should be positive, but got %f", cfg.ObstacleRadius)
	}
	if cfg.Reserve < 0 || cfg.QueryMargin < 0 {
		return errors.Errorf("margins should not be negative, but got reserve %f and query_margin %f", cfg.Reserve, cfg.QueryMargin)
	}
	return nil
}

// retryDelay returns the fixed delay between query attempts.
func (cfg *Config) retryDelay() time.Duration {
	return time.Duration(cfg.QueryRetrySeconds * float64(time.Second))
}

// RuleTables loads every configured CSV rule table, falling back to the
// compiled-in defaults for tables without a configured path.
func (cfg *Config) RuleTables() (*RuleTables, error) {
	tables := DefaultRuleTables()
	load := func(fileName string, target **TagRuleSet) error {
		if fileName == "" {
			return nil
		}
		rs, err := LoadTagRules(fileName)
		if err != nil {
			return err
		}
		*target = rs
		return nil
	}
	for _, entry := range []struct {
		fileName string
		target   **TagRuleSet
	}{
		{cfg.ObstacleTagsFile, &tables.Obstacle},
		{cfg.NotObstacleTagsFile, &tables.NotObstacle},
		{cfg.BarrierTagsFile, &tables.Barrier},
		{cfg.NotBarrierTagsFile, &tables.NotBarrier},
		{cfg.AntiBarrierTagsFile, &tables.AntiBarrier},
		{cfg.RoadTagsFile, &tables.Road},
		{cfg.FootwayTagsFile, &tables.Footway},
	} {
		if err := load(entry.fileName, entry.target); err != nil {
			return nil, err
		}
	}
	return tables, nil
}
