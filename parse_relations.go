package mapdata

import (
	"fmt"

	"github.com/paulmach/osm"
)

// parseRelations consumes the relation query result: member ways are
// partitioned into outer and inner roles, outer ways are fused across shared
// endpoints and inherit the relation's tags. Member refs absent from the
// store are skipped - not every referenced way falls inside the query box.
// Any role other than "outer" is treated as inner, mirroring the observed
// multipolygon convention; exotic roles like "subarea" are not given special
// meaning.
func (mapData *MapData) parseRelations() {
	for _, relation := range mapData.rawRelations.Relations {
		var outerIDs, innerIDs []osm.WayID
		for _, member := range relation.Members {
			if member.Type != "way" {
				continue
			}
			id := osm.WayID(member.Ref)
			if _, ok := mapData.ways[id]; !ok {
				continue
			}
			if member.Role == "outer" {
				outerIDs = append(outerIDs, id)
			} else {
				innerIDs = append(innerIDs, id)
			}
		}

		outerIDs = mapData.combineWays(outerIDs)

		for _, id := range outerIDs {
			way := mapData.ways[id]
			way.Role = ROLE_OUTER
			way.Tags.Overlay(Tags(relation.Tags))
		}
		for _, id := range innerIDs {
			mapData.ways[id].Role = ROLE_INNER
		}
	}

	if mapData.verbose {
		fmt.Printf("\tParsed %d relations\n", len(mapData.rawRelations.Relations))
	}
}
