package usecase

import (
	"math"
	"testing"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

func neoObject(hazardous bool, minKm, maxKm float64, missKm, velocityKph string) domain.NEOObject {
	obj := domain.NEOObject{
		IsPotentiallyHazardous: hazardous,
		EstimatedDiameter: domain.EstimatedDiameter{
			Kilometers: domain.DiameterRange{Min: minKm, Max: maxKm},
		},
	}
	if missKm != "" || velocityKph != "" {
		obj.CloseApproachData = []domain.CloseApproachData{{
			MissDistance:     domain.MissDistance{Kilometers: missKm},
			RelativeVelocity: domain.RelativeVelocity{KilometersPerHour: velocityKph},
		}}
	}
	return obj
}

func TestAggregateNEOStats(t *testing.T) {
	feed := domain.NEOFeed{
		NearEarthObjects: map[string][]domain.NEOObject{
			"2026-09-01": {
				neoObject(true, 0.1, 0.3, "500000", "30000"),
				neoObject(false, 0.2, 0.4, "750000", "45000"),
				neoObject(true, 0.3, 0.5, "250000", "20000"),
			},
			"2026-09-02": {
				neoObject(false, 0.4, 0.6, "900000", "60000"),
				neoObject(false, 0.5, 0.7, "100000", "15000"),
			},
		},
	}

	stats := AggregateNEOStats(feed)

	if stats.TotalCount != 5 {
		t.Errorf("expected total 5, got %d", stats.TotalCount)
	}
	if stats.PotentiallyHazardousCount != 2 {
		t.Errorf("expected 2 hazardous, got %d", stats.PotentiallyHazardousCount)
	}
	if stats.AverageDiameterKm == nil || math.Abs(*stats.AverageDiameterKm-0.4) > 1e-9 {
		t.Errorf("expected average diameter 0.4, got %v", stats.AverageDiameterKm)
	}
	if stats.ClosestApproachKm == nil || *stats.ClosestApproachKm != 100000 {
		t.Errorf("expected closest approach 100000, got %v", stats.ClosestApproachKm)
	}
	if stats.FastestVelocityKph == nil || *stats.FastestVelocityKph != 60000 {
		t.Errorf("expected fastest velocity 60000, got %v", stats.FastestVelocityKph)
	}
}

func TestAggregateNEOStatsEmptyFeed(t *testing.T) {
	stats := AggregateNEOStats(domain.NEOFeed{})

	if stats.TotalCount != 0 || stats.PotentiallyHazardousCount != 0 {
		t.Errorf("expected zero counts, got %+v", stats)
	}
	if stats.AverageDiameterKm != nil || stats.ClosestApproachKm != nil || stats.FastestVelocityKph != nil {
		t.Error("aggregates must stay nil for an empty feed")
	}
}

func TestAggregateNEOStatsUnparseableApproach(t *testing.T) {
	feed := domain.NEOFeed{
		NearEarthObjects: map[string][]domain.NEOObject{
			"2026-09-01": {
				neoObject(false, 0.1, 0.3, "not-a-number", ""),
			},
		},
	}

	stats := AggregateNEOStats(feed)

	if stats.TotalCount != 1 {
		t.Errorf("expected total 1, got %d", stats.TotalCount)
	}
	if stats.ClosestApproachKm != nil || stats.FastestVelocityKph != nil {
		t.Error("unparseable approach values must be skipped, not guessed")
	}
	if stats.AverageDiameterKm == nil {
		t.Error("diameter average must still be computed")
	}
}
