package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Unknown substitutes for a missing country name or region.
const Unknown = "Unknown"

// Country is one record as returned by the REST Countries API.
// Only the fields the statistics need are decoded; currencies are kept opaque.
type Country struct {
	Name       CountryName     `json:"name"`
	Population Population      `json:"population"`
	Region     string          `json:"region"`
	Currencies json.RawMessage `json:"currencies,omitempty"`
}

// CommonName returns the common name, or Unknown when it is absent.
func (c Country) CommonName() string {
	if c.Name.Common == "" {
		return Unknown
	}
	return c.Name.Common
}

// EffectiveRegion returns the region, or Unknown when it is absent.
func (c Country) EffectiveRegion() string {
	if c.Region == "" {
		return Unknown
	}
	return c.Region
}

// CountryName holds the name object of a record.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official,omitempty"`
}

// UnmarshalJSON accepts a name object and treats anything else as a missing name.
func (n *CountryName) UnmarshalJSON(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 || bytes.TrimSpace(data)[0] != '{' {
		*n = CountryName{}
		return nil
	}
	type plain CountryName
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		// A name object with unexpected member types is still a missing name.
		*n = CountryName{}
		return nil
	}
	*n = CountryName(p)
	return nil
}

// Population is a non-negative head count.
//
// Decoding never fails: numbers are rounded, numeric strings are parsed,
// and null, booleans, objects, garbage or negative values count as zero.
type Population int64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Population) UnmarshalJSON(data []byte) error {
	*p = parsePopulation(bytes.TrimSpace(data))
	return nil
}

func parsePopulation(data []byte) Population {
	if len(data) == 0 {
		return 0
	}
	raw := string(data)
	if data[0] == '"' {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return 0
		}
		raw = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return Population(math.Round(f))
}
