package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countrystats/internal/model"
)

func country(name string, pop int64, region string) model.Country {
	return model.Country{
		Name:       model.CountryName{Common: name},
		Population: model.Population(pop),
		Region:     region,
	}
}

func TestAggregate_Scenario(t *testing.T) {
	in := []model.Country{
		country("Aland", 30000, "Europe"),
		country("", 5000000, "Europe"),
		country("Zed", 1000000, "Unknown"),
	}

	want := model.AggregateResult{
		TotalCountries:    3,
		TotalPopulation:   6030000,
		AveragePopulation: 2010000,
		Regions: []model.RegionStat{
			{Region: "Europe", Count: 2, Population: 5030000},
			{Region: "Unknown", Count: 1, Population: 1000000},
		},
	}

	if diff := cmp.Diff(want, Aggregate(in)); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_MissingRegionFoldsIntoUnknown(t *testing.T) {
	in := []model.Country{
		country("A", 10, ""),
		country("B", 20, "Asia"),
		country("C", 30, "Unknown"),
	}

	got := Aggregate(in)

	want := []model.RegionStat{
		{Region: "Unknown", Count: 2, Population: 40},
		{Region: "Asia", Count: 1, Population: 20},
	}
	if diff := cmp.Diff(want, got.Regions); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	in := []model.Country{
		country("a", 1, "Oceania"),
		country("b", 1, "Africa"),
		country("c", 1, "Oceania"),
		country("d", 1, "Americas"),
		country("e", 1, "Africa"),
	}

	got := Aggregate(in)

	var order []string
	for _, r := range got.Regions {
		order = append(order, r.Region)
	}
	assert.Equal(t, []string{"Oceania", "Africa", "Americas"}, order)
}

func TestAggregate_Average(t *testing.T) {
	tests := []struct {
		name string
		pops []int64
		want int64
	}{
		{name: "exact", pops: []int64{10, 20, 30}, want: 20},
		{name: "half rounds up", pops: []int64{1, 2}, want: 2},
		{name: "below half rounds down", pops: []int64{1, 1, 2}, want: 1},
		{name: "above half rounds up", pops: []int64{1, 2, 2}, want: 2},
		{name: "zero populations", pops: []int64{0, 0}, want: 0},
		{name: "single", pops: []int64{7}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]model.Country, 0, len(tt.pops))
			var sum int64
			for _, p := range tt.pops {
				in = append(in, country("x", p, "R"))
				sum += p
			}

			got := Aggregate(in)
			assert.Equal(t, len(tt.pops), got.TotalCountries)
			assert.Equal(t, sum, got.TotalPopulation)
			assert.Equal(t, tt.want, got.AveragePopulation)
		})
	}
}

func TestAggregate_RegionCountsMatchInput(t *testing.T) {
	regions := []string{"Asia", "", "Europe", "Asia", "Unknown", "Europe", "Asia"}
	in := make([]model.Country, 0, len(regions))
	for i, r := range regions {
		in = append(in, country("c", int64(i+1)*100, r))
	}

	got := Aggregate(in)

	wantCount := map[string]int{}
	wantPop := map[string]int64{}
	for _, c := range in {
		wantCount[c.EffectiveRegion()]++
		wantPop[c.EffectiveRegion()] += int64(c.Population)
	}

	assert.Len(t, got.Regions, len(wantCount))
	total := 0
	for _, r := range got.Regions {
		assert.Equal(t, wantCount[r.Region], r.Count, r.Region)
		assert.Equal(t, wantPop[r.Region], r.Population, r.Region)
		total += r.Count
	}
	assert.Equal(t, got.TotalCountries, total)
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)

	assert.Equal(t, 0, got.TotalCountries)
	assert.Equal(t, int64(0), got.AveragePopulation)
	assert.Empty(t, got.Regions)
}

func TestAggregate_LargePopulationsSaturate(t *testing.T) {
	var in []model.Country
	require.NoError(t, json.Unmarshal([]byte(`[
		{"name":{"common":"Big"},"population":5e18,"region":"Asia"},
		{"name":{"common":"Huge"},"population":1e19,"region":"Asia"},
		{"name":{"common":"Small"},"population":10,"region":"Europe"}
	]`), &in))

	got := Aggregate(in)

	assert.Equal(t, int64(math.MaxInt64), got.TotalPopulation)
	assert.Equal(t, int64(math.MaxInt64/3), got.AveragePopulation)
	assert.Equal(t, int64(math.MaxInt64), got.Regions[0].Population)
	assert.Equal(t, int64(10), got.Regions[1].Population)
	for _, r := range got.Regions {
		assert.GreaterOrEqual(t, r.Population, int64(0), r.Region)
	}
}

func TestAggregate_AverageNearMaxInt64(t *testing.T) {
	var in []model.Country
	require.NoError(t, json.Unmarshal([]byte(`[{"population":5e18}]`), &in))

	got := Aggregate(in)

	assert.Equal(t, int64(5e18), got.TotalPopulation)
	assert.Equal(t, int64(5e18), got.AveragePopulation)
}
