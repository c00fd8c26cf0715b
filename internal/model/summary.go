package model

// RegionStat is the per-region slice of an aggregate.
type RegionStat struct {
	Region     string `json:"region"`
	Count      int    `json:"count"`
	Population int64  `json:"population"`
}

// AggregateResult is the request-scoped summary of a set of countries.
// Regions keep the order in which each region was first seen.
type AggregateResult struct {
	TotalCountries    int          `json:"total_countries"`
	TotalPopulation   int64        `json:"total_population"`
	AveragePopulation int64        `json:"average_population"`
	Regions           []RegionStat `json:"regions"`
}

// Region looks up the stats for a region by name.
func (r AggregateResult) Region(name string) (RegionStat, bool) {
	for _, rs := range r.Regions {
		if rs.Region == name {
			return rs, true
		}
	}
	return RegionStat{}, false
}
