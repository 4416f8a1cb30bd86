package mapdata

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// rawSnapshot is the on-disk form of a run's raw query results, so a run can
// be replayed offline without touching the network.
type rawSnapshot struct {
	Zone      string          `json:"zone"`
	Region    BoundingRegion  `json:"region"`
	Ways      *OverpassResult `json:"ways"`
	Relations *OverpassResult `json:"relations"`
	Nodes     *OverpassResult `json:"nodes"`
}

// SaveRawData writes the raw query results of the run to a JSON file.
// Callable only after RunQueries (or LoadRawData) succeeded.
func (mapData *MapData) SaveRawData(fileName string) error {
	if mapData.rawWays == nil || mapData.rawRelations == nil || mapData.rawNodes == nil {
		return errors.New("No raw data to save")
	}
	snapshot := rawSnapshot{
		Zone:      mapData.projector.Zone().String(),
		Region:    mapData.region,
		Ways:      mapData.rawWays,
		Relations: mapData.rawRelations,
		Nodes:     mapData.rawNodes,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "Marshal raw data")
	}
	if err := os.WriteFile(fileName, data, 0644); err != nil {
		return errors.Wrapf(err, "Can not write raw data to '%s'", fileName)
	}
	return nil
}

// LoadRawData reads previously saved raw query results, replacing the
// network queries of the run.
func (mapData *MapData) LoadRawData(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return errors.Wrapf(err, "Can not read raw data from '%s'", fileName)
	}
	var snapshot rawSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return errors.Wrapf(err, "Malformed raw data in '%s'", fileName)
	}
	if snapshot.Ways == nil || snapshot.Relations == nil || snapshot.Nodes == nil {
		return errors.Errorf("Incomplete raw data in '%s'", fileName)
	}
	if snapshot.Zone != "" && snapshot.Zone != mapData.projector.Zone().String() {
		return errors.Errorf("Raw data zone %s does not match run zone %s", snapshot.Zone, mapData.projector.Zone())
	}
	mapData.rawWays = snapshot.Ways
	mapData.rawRelations = snapshot.Relations
	mapData.rawNodes = snapshot.Nodes
	return nil
}
