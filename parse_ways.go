package mapdata

import (
	"fmt"

	"github.com/paulmach/osm"
)

// parseWays fills the authoritative way store from the raw way query result.
// Every member node id is registered so that parseNodes can later tell
// solitary nodes apart from way members.
func (mapData *MapData) parseWays() error {
	nodeLookup := make(map[int64]OverpassElement, len(mapData.rawWays.Nodes))
	for _, element := range mapData.rawWays.Nodes {
		nodeLookup[element.ID] = element
	}

	for _, element := range mapData.rawWays.Ways {
		if len(element.Nodes) < 2 {
			if mapData.verbose {
				fmt.Printf("\t[WARNING]: Way with %d nodes met. Way ID: '%d'\n", len(element.Nodes), element.ID)
			}
			continue
		}

		nodes := make([]Node, 0, len(element.Nodes))
		complete := true
		for _, ref := range element.Nodes {
			raw, ok := nodeLookup[ref]
			if !ok {
				complete = false
				break
			}
			nodes = append(nodes, Node{
				ID:   osm.NodeID(raw.ID),
				Lat:  raw.Lat,
				Lon:  raw.Lon,
				Tags: Tags(raw.Tags).Clone(),
			})
		}
		if !complete {
			if mapData.verbose {
				fmt.Printf("\t[WARNING]: Way with unresolved node refs met. Way ID: '%d'\n", element.ID)
			}
			continue
		}

		for _, node := range nodes {
			mapData.wayNodeIDs[node.ID] = struct{}{}
		}

		way := &Way{
			ID:     osm.WayID(element.ID),
			Nodes:  nodes,
			IsArea: nodes[0].ID == nodes[len(nodes)-1].ID,
			Tags:   Tags(element.Tags).Clone(),
		}
		way.rebuildGeometry(mapData.projector)
		mapData.ways[way.ID] = way
	}

	if mapData.verbose {
		fmt.Printf("\tParsed %d ways\n", len(mapData.ways))
	}
	return nil
}
