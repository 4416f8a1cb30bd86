package mapdata

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
)

// Wildcard value in a rule table: any value of the key qualifies unless the
// value is listed in the paired exclusion table.
const ruleWildcard = "*"

// TagRuleSet is a loaded mapping of tag key to the set of matching values.
// Immutable once loaded.
type TagRuleSet struct {
	rules map[string]map[string]struct{}
}

// NewTagRuleSet builds a rule set from a key -> values mapping.
func NewTagRuleSet(table map[string][]string) *TagRuleSet {
	rs := &TagRuleSet{rules: make(map[string]map[string]struct{}, len(table))}
	for key, values := range table {
		set := make(map[string]struct{}, len(values))
		for _, value := range values {
			set[value] = struct{}{}
		}
		rs.rules[key] = set
	}
	return rs
}

// LoadTagRules reads a two-column CSV file of (key, value) rows into a rule
// set. A malformed row is a fatal load error: classification depends on
// complete tables.
func LoadTagRules(fileName string) (*TagRuleSet, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Can not open rule table '%s'", fileName)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "Malformed rule table '%s'", fileName)
	}

	table := make(map[string][]string)
	for _, row := range rows {
		if row[0] == "" {
			return nil, errors.Errorf("Empty key in rule table '%s'", fileName)
		}
		table[row[0]] = append(table[row[0]], row[1])
	}
	return NewTagRuleSet(table), nil
}

// HasKey reports whether the rule set lists any value for the given key.
func (rs *TagRuleSet) HasKey(key string) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.rules[key]
	return ok
}

// HasValue reports whether the value is explicitly listed under the key.
func (rs *TagRuleSet) HasValue(key, value string) bool {
	if rs == nil {
		return false
	}
	values, ok := rs.rules[key]
	if !ok {
		return false
	}
	_, ok = values[value]
	return ok
}

// HasWildcard reports whether the key carries the wildcard value.
func (rs *TagRuleSet) HasWildcard(key string) bool {
	return rs.HasValue(key, ruleWildcard)
}

// matchTagRules tests the tags against an include rule set paired with an
// exclusion set. A tag matches when its value is explicitly listed under its
// key, or when the key carries a wildcard and the value is not listed in the
// exclusion set. Explicit exclusion beats wildcard.
func matchTagRules(tags Tags, include, exclude *TagRuleSet) bool {
	for key, value := range tags {
		if !include.HasKey(key) {
			continue
		}
		if include.HasValue(key, value) {
			return true
		}
		if include.HasWildcard(key) && !exclude.HasValue(key, value) {
			return true
		}
	}
	return false
}

// RuleTables bundles every loaded classification table of a run.
type RuleTables struct {
	Obstacle    *TagRuleSet
	NotObstacle *TagRuleSet
	Barrier     *TagRuleSet
	NotBarrier  *TagRuleSet
	AntiBarrier *TagRuleSet
	Road        *TagRuleSet
	Footway     *TagRuleSet
}

// DefaultRuleTables returns the compiled-in classification tables, used when
// no external CSV tables are configured.
func DefaultRuleTables() *RuleTables {
	return &RuleTables{
		Obstacle:    NewTagRuleSet(defaultObstacleTags),
		NotObstacle: NewTagRuleSet(defaultNotObstacleTags),
		Barrier:     NewTagRuleSet(defaultBarrierTags),
		NotBarrier:  NewTagRuleSet(defaultNotBarrierTags),
		AntiBarrier: NewTagRuleSet(defaultAntiBarrierTags),
		Road:        NewTagRuleSet(defaultRoadTags),
		Footway:     NewTagRuleSet(defaultFootwayTags),
	}
}
