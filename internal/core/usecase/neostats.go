package usecase

import (
	"strconv"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

// AggregateNEOStats flattens a feed and derives its summary statistics.
// An empty feed yields zero counts and null aggregates; min/max/mean are
// never computed over an empty collection.
func AggregateNEOStats(feed domain.NEOFeed) domain.NEOStats {
	all := feed.Flatten()

	stats := domain.NEOStats{TotalCount: len(all)}
	if len(all) == 0 {
		return stats
	}

	var diameterSum float64
	var closest, fastest *float64
	for _, neo := range all {
		if neo.IsPotentiallyHazardous {
			stats.PotentiallyHazardousCount++
		}
		diameterSum += (neo.EstimatedDiameter.Kilometers.Min + neo.EstimatedDiameter.Kilometers.Max) / 2

		if len(neo.CloseApproachData) == 0 {
			continue
		}
		// Only the first close approach counts, matching the feed's
		// date-window ordering.
		approach := neo.CloseApproachData[0]
		if miss, err := strconv.ParseFloat(approach.MissDistance.Kilometers, 64); err == nil {
			if closest == nil || miss < *closest {
				closest = &miss
			}
		}
		if velocity, err := strconv.ParseFloat(approach.RelativeVelocity.KilometersPerHour, 64); err == nil {
			if fastest == nil || velocity > *fastest {
				fastest = &velocity
			}
		}
	}

	avg := diameterSum / float64(len(all))
	stats.AverageDiameterKm = &avg
	stats.ClosestApproachKm = closest
	stats.FastestVelocityKph = fastest
	return stats
}
