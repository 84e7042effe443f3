package tools

// AllTools contains all tool specifications for the League of Legends MCP server.
// Descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// SUMMONER TOOLS
	// ==========================================================================
	{
		Name:     "get_summoner_info",
		Method:   "GetSummonerInfo",
		Title:    "Get Summoner Info",
		Category: "summoner",
		Description: `Look up a League of Legends summoner by name using the Riot Games API.

USE WHEN: User asks "who is X", "what level is X", "get the PUUID of X", or needs a summoner's account identifiers.

PARAMETERS:
- summoner_name: Summoner name exactly as shown in game (required)
- region: Platform region code such as kr, na1, euw1 (default "kr"; see list_regions)

RETURNS: summonerId, accountId, puuid, name, profileIconId, level and revisionDate (epoch milliseconds).
On failure returns a single "error" field carrying the Riot API response body.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// REFERENCE TOOLS
	// ==========================================================================
	{
		Name:     "list_regions",
		Method:   "ListRegions",
		Title:    "List Regions",
		Category: "reference",
		Description: `List the platform region codes accepted by get_summoner_info, grouped by routing cluster.

USE WHEN: User is unsure which region code to pass, or asks "which servers are supported".

RETURNS: Clusters with their platform codes, the total count and the default region.`,
		ReadOnly:   true,
		Idempotent: true,
	},
}
