package mapdata

// Tags is a mapping of OSM tag keys to values. A way or node without tags
// carries an empty (but non-nil) mapping.
type Tags map[string]string

// Get returns the value for the given key or an empty string when the key
// is absent.
func (tags Tags) Get(key string) string {
	if tags == nil {
		return ""
	}
	return tags[key]
}

// Has reports whether the given key is present.
func (tags Tags) Has(key string) bool {
	_, ok := tags[key]
	return ok
}

// Clone returns a copy of the mapping. Cloning a nil mapping yields an empty
// one.
func (tags Tags) Clone() Tags {
	copied := make(Tags, len(tags))
	for k, v := range tags {
		copied[k] = v
	}
	return copied
}

// Overlay writes every key of the other mapping into the receiver. Values of
// the other mapping win on key collision. Returns the receiver for chaining.
func (tags Tags) Overlay(other Tags) Tags {
	for k, v := range other {
		tags[k] = v
	}
	return tags
}

var (
	// Solitary nodes carrying any of these tags are treated as point
	// obstacles. Wildcard means every value of the key qualifies unless the
	// value is listed in defaultNotObstacleTags.
	defaultObstacleTags = map[string][]string{
		"barrier": {"*"},
		"natural": {"tree", "rock", "stone", "shrub"},
		"man_made": {
			"street_cabinet",
			"flagpole",
			"utility_pole",
			"surveillance",
		},
		"highway": {"street_lamp"},
		"amenity": {"fountain", "waste_basket", "bench"},
		"power":   {"pole", "tower"},
	}

	defaultNotObstacleTags = map[string][]string{
		"barrier": {
			"entrance",
			"kerb",
			"border_control",
			"cattle_grid",
			"height_restrictor",
			"toll_booth",
		},
	}

	// Ways and areas carrying any of these tags are impassable for the
	// planner. Same wildcard semantics as the obstacle table.
	defaultBarrierTags = map[string][]string{
		"barrier":  {"*"},
		"building": {"*"},
		"natural":  {"water", "wetland", "cliff", "scrub", "tree_row"},
		"waterway": {"river", "stream", "canal", "ditch", "drain"},
		"landuse":  {"reservoir", "basin", "quarry"},
		"man_made": {"breakwater", "embankment"},
	}

	defaultNotBarrierTags = map[string][]string{
		"barrier": {"kerb", "entrance", "border_control"},
	}

	// A barrier-tagged way whose tags also match this table is an opening
	// (gate, stile, ...) and must stay out of the barrier set.
	defaultAntiBarrierTags = map[string][]string{
		"barrier": {
			"gate",
			"lift_gate",
			"swing_gate",
			"stile",
			"kissing_gate",
			"turnstile",
			"cycle_barrier",
		},
		"access": {"yes", "permissive"},
	}

	// Road-like highway classes emitted as drivable ways.
	defaultRoadTags = map[string][]string{
		"highway": {
			"motorway",
			"motorway_link",
			"trunk",
			"trunk_link",
			"primary",
			"primary_link",
			"secondary",
			"secondary_link",
			"tertiary",
			"tertiary_link",
			"unclassified",
			"residential",
			"service",
			"track",
			"road",
		},
	}

	// Highway classes traversable on foot only.
	defaultFootwayTags = map[string][]string{
		"highway": {
			"footway",
			"path",
			"pedestrian",
			"steps",
			"cycleway",
			"bridleway",
			"living_street",
			"corridor",
		},
	}
)
