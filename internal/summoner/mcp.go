package summoner

import (
	"context"
	"errors"

	apierrors "github.com/riftwatch/lol-mcp-server/internal/errors"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// ErrorPrefix starts every error message returned in a GetSummonerInfoResult
const ErrorPrefix = "サモナー情報の取得に失敗しました: "

// GetSummonerInfoMCP is the MCP wrapper for GetSummoner.
//
// Upstream failures of every kind (bad key, unknown name, server error) come back
// as the same {"error": ...} result carrying the raw response body. Transport
// failures use the same shape with the cause text. Only invalid arguments and
// cancellation surface as Go errors.
func (c *Client) GetSummonerInfoMCP(ctx context.Context, args GetSummonerInfoArgs) (GetSummonerInfoResult, error) {
	if err := ValidateSummonerName(args.SummonerName); err != nil {
		return GetSummonerInfoResult{}, err
	}

	region := args.Region
	if region == "" {
		region = DefaultRegion
	}
	if !IsKnownRegion(region) {
		c.Logger.Debug("Region not in platform table, using as given", "region", region)
	}

	info, err := c.GetSummoner(ctx, region, args.SummonerName)
	if err != nil {
		var upstream *apierrors.UpstreamError
		if errors.As(err, &upstream) {
			return GetSummonerInfoResult{
				Error:          ErrorPrefix + upstream.Body,
				UpstreamStatus: upstream.StatusCode,
			}, nil
		}

		var transport *apierrors.TransportError
		if errors.As(err, &transport) && ctx.Err() == nil {
			return GetSummonerInfoResult{
				Error: ErrorPrefix + transport.Err.Error(),
			}, nil
		}

		return GetSummonerInfoResult{}, err
	}

	return GetSummonerInfoResult{
		SummonerID:    info.SummonerID,
		AccountID:     info.AccountID,
		PUUID:         info.PUUID,
		Name:          info.Name,
		ProfileIconID: info.ProfileIconID,
		Level:         info.Level,
		RevisionDate:  info.RevisionDate,
	}, nil
}

// ListRegionsMCP returns the known platform region codes
func (c *Client) ListRegionsMCP(ctx context.Context, args ListRegionsArgs) (ListRegionsResult, error) {
	clusters := KnownRegions()

	count := 0
	for _, rc := range clusters {
		count += len(rc.Platforms)
	}

	return ListRegionsResult{
		Clusters: clusters,
		Count:    count,
		Default:  DefaultRegion,
	}, nil
}
