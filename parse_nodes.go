package mapdata

import (
	"fmt"

	"github.com/paulmach/osm"
)

// parseNodes classifies solitary nodes - nodes not referenced by any way -
// against the obstacle rule tables. A match becomes a circular area way of
// the configured radius centered on the node's projected position, keyed by
// the node's own id. Non-matching solitary nodes contribute nothing.
func (mapData *MapData) parseNodes() {
	for _, element := range mapData.rawNodes.Nodes {
		if _, partOfWay := mapData.wayNodeIDs[osm.NodeID(element.ID)]; partOfWay {
			continue
		}
		tags := Tags(element.Tags).Clone()
		if !matchTagRules(tags, mapData.rules.Obstacle, mapData.rules.NotObstacle) {
			continue
		}

		center := mapData.projector.Project(element.Lat, element.Lon)
		obstacle := &Way{
			ID:     osm.WayID(element.ID),
			IsArea: true,
			Tags:   tags,
			Nodes: []Node{{
				ID:   osm.NodeID(element.ID),
				Lat:  element.Lat,
				Lon:  element.Lon,
				Tags: tags,
			}},
			Geometry: pointToCircle(center, mapData.cfg.ObstacleRadius),
		}
		mapData.obstacles = append(mapData.obstacles, obstacle)
	}

	if mapData.verbose {
		fmt.Printf("\tClassified %d obstacle nodes\n", len(mapData.obstacles))
	}
}
