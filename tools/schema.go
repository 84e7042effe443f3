package tools

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/riftwatch/lol-mcp-server/internal/summoner"
)

// summonerInputSchema derives the get_summoner_info input schema from its Args type
// and adds the constraints struct tags cannot express.
func summonerInputSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[summoner.GetSummonerInfoArgs](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer get_summoner_info schema: %w", err)
	}

	name, ok := schema.Properties["summoner_name"]
	if !ok {
		return nil, fmt.Errorf("get_summoner_info schema has no summoner_name property")
	}
	name.MinLength = ptr(1)

	region, ok := schema.Properties["region"]
	if !ok {
		return nil, fmt.Errorf("get_summoner_info schema has no region property")
	}
	def, err := json.Marshal(summoner.DefaultRegion)
	if err != nil {
		return nil, err
	}
	region.Default = def

	return schema, nil
}
