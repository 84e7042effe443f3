package summoner

// Region codes are used verbatim as the platform subdomain, so they are lower case here.
// This table is informational; lookups accept any region string.
var regionClusters = []RegionCluster{
	{Cluster: "AMERICAS", Platforms: []string{"br1", "la1", "la2", "na1"}},
	{Cluster: "EUROPE", Platforms: []string{"eun1", "euw1", "tr1", "me1", "ru"}},
	{Cluster: "ASIA", Platforms: []string{"kr", "jp1"}},
	{Cluster: "SEA", Platforms: []string{"oc1", "sg2", "tw2", "vn2"}},
}

// KnownRegions returns a copy of the platform region table
func KnownRegions() []RegionCluster {
	out := make([]RegionCluster, 0, len(regionClusters))
	for _, rc := range regionClusters {
		out = append(out, RegionCluster{
			Cluster:   rc.Cluster,
			Platforms: append([]string(nil), rc.Platforms...),
		})
	}
	return out
}

// IsKnownRegion reports whether region appears in the platform table
func IsKnownRegion(region string) bool {
	for _, rc := range regionClusters {
		for _, p := range rc.Platforms {
			if p == region {
				return true
			}
		}
	}
	return false
}
