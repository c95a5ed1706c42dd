package wbdata

import "github.com/rogomes/wbdata/pkg/pagination"

// BaseURL is the World Bank Open Data API root.
const BaseURL = "https://api.worldbank.org/v2"

// Ref is an id/value pair the API uses for nested references
// (region, income level, source, topic).
type Ref struct {
	ID    string
	Value string
}

// Country is one entry of the /countries listing.
type Country struct {
	ID          string
	ISO2Code    string
	Name        string
	Region      Ref
	IncomeLevel Ref
	LendingType Ref
	CapitalCity string
	Longitude   string
	Latitude    string
}

// Indicator is one entry of the /indicators listing.
type Indicator struct {
	ID                 string
	Name               string
	Unit               string
	Source             Ref
	SourceNote         string
	SourceOrganization string
	Topics             []Ref
}

// Source is one entry of the /sources listing.
type Source struct {
	ID   string
	Name string
}

// DataPoint is one observation of an indicator time series. Value is nil
// where the API reports no observation for that country and date.
type DataPoint struct {
	Indicator      Ref
	Country        Ref
	CountryISO3    string
	Date           string
	Value          *float64
	Unit           string
	ObsStatus      string
	Decimal        int
}

// decodeRef reads a nested {"id": ..., "value": ...} reference.
func decodeRef(rec pagination.Record, field string) Ref {
	nested, ok := rec[field].(map[string]any)
	if !ok {
		return Ref{}
	}
	return Ref{ID: str(nested, "id"), Value: str(nested, "value")}
}

// str reads a string field, tolerating absence and non-string values.
func str(m map[string]any, field string) string {
	v, _ := m[field].(string)
	return v
}

func decodeCountry(rec pagination.Record) Country {
	return Country{
		ID:          str(rec, "id"),
		ISO2Code:    str(rec, "iso2Code"),
		Name:        str(rec, "name"),
		Region:      decodeRef(rec, "region"),
		IncomeLevel: decodeRef(rec, "incomeLevel"),
		LendingType: decodeRef(rec, "lendingType"),
		CapitalCity: str(rec, "capitalCity"),
		Longitude:   str(rec, "longitude"),
		Latitude:    str(rec, "latitude"),
	}
}

func decodeIndicator(rec pagination.Record) Indicator {
	ind := Indicator{
		ID:                 str(rec, "id"),
		Name:               str(rec, "name"),
		Unit:               str(rec, "unit"),
		Source:             decodeRef(rec, "source"),
		SourceNote:         str(rec, "sourceNote"),
		SourceOrganization: str(rec, "sourceOrganization"),
	}
	if topics, ok := rec["topics"].([]any); ok {
		for _, t := range topics {
			if topic, ok := t.(map[string]any); ok {
				ind.Topics = append(ind.Topics, Ref{ID: str(topic, "id"), Value: str(topic, "value")})
			}
		}
	}
	return ind
}

func decodeSource(rec pagination.Record) Source {
	return Source{ID: str(rec, "id"), Name: str(rec, "name")}
}

func decodeDataPoint(rec pagination.Record) DataPoint {
	point := DataPoint{
		Indicator:   decodeRef(rec, "indicator"),
		Country:     decodeRef(rec, "country"),
		CountryISO3: str(rec, "countryiso3code"),
		Date:        str(rec, "date"),
		Unit:        str(rec, "unit"),
		ObsStatus:   str(rec, "obs_status"),
	}
	if v, ok := rec["value"].(float64); ok {
		point.Value = &v
	}
	if d, ok := rec["decimal"].(float64); ok {
		point.Decimal = int(d)
	}
	return point
}
