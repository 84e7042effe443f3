package summoner

// GetSummonerInfoArgs contains parameters for a summoner lookup
type GetSummonerInfoArgs struct {
	SummonerName string `json:"summoner_name" jsonschema:"Summoner name to look up"`
	Region       string `json:"region,omitempty" jsonschema:"Platform region code such as kr, na1 or euw1 (default: kr)"`
}

// GetSummonerInfoResult is either the seven summoner fields or a single error message.
// Fields the Riot API did not return are omitted.
type GetSummonerInfoResult struct {
	SummonerID    *string `json:"summonerId,omitempty"`
	AccountID     *string `json:"accountId,omitempty"`
	PUUID         *string `json:"puuid,omitempty"`
	Name          *string `json:"name,omitempty"`
	ProfileIconID *int    `json:"profileIconId,omitempty"`
	Level         *int64  `json:"level,omitempty"`
	RevisionDate  *int64  `json:"revisionDate,omitempty"`

	// Error is set instead of the fields above when the lookup failed
	Error string `json:"error,omitempty"`

	// UpstreamStatus is the Riot API status code behind Error (0 for transport failures).
	// Logged and counted, never serialized.
	UpstreamStatus int `json:"-"`
}

// ListRegionsArgs takes no parameters
type ListRegionsArgs struct{}

// ListRegionsResult lists known platform region codes by routing cluster
type ListRegionsResult struct {
	Clusters []RegionCluster `json:"clusters"`
	Count    int             `json:"count"`
	Default  string          `json:"default"`
}

// RegionCluster groups platform codes under their regional routing value
type RegionCluster struct {
	Cluster   string   `json:"cluster"`
	Platforms []string `json:"platforms"`
}

// Failed reports whether the lookup ended in an error result
func (r GetSummonerInfoResult) Failed() bool {
	return r.Error != ""
}
