// Package stats computes population aggregates over country records.
package stats

import (
	"math"

	"countrystats/internal/model"
)

// Aggregate summarizes countries into totals, a rounded average and a
// per-region breakdown in first-seen region order.
//
// An empty input yields a zero result; callers are expected to reject empty
// result sets before aggregating.
func Aggregate(countries []model.Country) model.AggregateResult {
	res := model.AggregateResult{
		TotalCountries: len(countries),
		Regions:        []model.RegionStat{},
	}
	index := make(map[string]int)

	for _, c := range countries {
		pop := int64(c.Population)
		res.TotalPopulation = addSaturating(res.TotalPopulation, pop)

		region := c.EffectiveRegion()
		i, ok := index[region]
		if !ok {
			i = len(res.Regions)
			index[region] = i
			res.Regions = append(res.Regions, model.RegionStat{Region: region})
		}
		res.Regions[i].Count++
		res.Regions[i].Population = addSaturating(res.Regions[i].Population, pop)
	}

	res.AveragePopulation = roundedAverage(res.TotalPopulation, int64(res.TotalCountries))
	return res
}

// roundedAverage divides with round-half-up; total is never negative.
func roundedAverage(total, n int64) int64 {
	if n == 0 {
		return 0
	}
	q, r := total/n, total%n
	if r >= n-r {
		q++
	}
	return q
}

// addSaturating adds two non-negative counts, pinning at math.MaxInt64.
func addSaturating(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
