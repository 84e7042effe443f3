// Package summoner provides a client for the Riot Games summoner-v4 API.
// It looks up League of Legends summoner accounts by name on a regional platform host.
package summoner

// Summoner is the summoner-v4 response body. Every field is optional: a key
// missing from the payload (or sent as null) stays nil.
type Summoner struct {
	ID            *string `json:"id"`            // Encrypted summoner ID
	AccountID     *string `json:"accountId"`     // Encrypted account ID
	PUUID         *string `json:"puuid"`         // Globally unique player ID
	Name          *string `json:"name"`          // Summoner name
	ProfileIconID *int    `json:"profileIconId"` // Profile icon ID
	SummonerLevel *int64  `json:"summonerLevel"` // Summoner level
	RevisionDate  *int64  `json:"revisionDate"`  // Last modification, epoch milliseconds
}

// SummonerInfo is the reshaped summoner record returned to tool callers.
// It is built fresh for every lookup and never cached.
type SummonerInfo struct {
	SummonerID    *string
	AccountID     *string
	PUUID         *string
	Name          *string
	ProfileIconID *int
	Level         *int64
	RevisionDate  *int64
}

// info copies the seven fields by key, without coercion.
func (s *Summoner) info() *SummonerInfo {
	return &SummonerInfo{
		SummonerID:    s.ID,
		AccountID:     s.AccountID,
		PUUID:         s.PUUID,
		Name:          s.Name,
		ProfileIconID: s.ProfileIconID,
		Level:         s.SummonerLevel,
		RevisionDate:  s.RevisionDate,
	}
}
