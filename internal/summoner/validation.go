package summoner

import (
	apierrors "github.com/riftwatch/lol-mcp-server/internal/errors"
)

// ValidateSummonerName checks that a name was supplied.
// The content itself is not validated; it goes into the URL as given.
func ValidateSummonerName(name string) error {
	if name == "" {
		return apierrors.NewValidationError("summoner_name", "", "is required")
	}
	return nil
}
