package wbdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPages serves canned single-page bodies keyed by URL suffix.
type stubPages struct {
	bodies map[string]string
}

func (s *stubPages) GetPage(_ context.Context, url string, _ map[string]string, _ bool) (json.RawMessage, error) {
	for suffix, body := range s.bodies {
		if strings.HasSuffix(url, suffix) {
			return json.RawMessage(body), nil
		}
	}
	return nil, fmt.Errorf("no canned body for %s", url)
}

func TestGetCountries(t *testing.T) {
	pages := &stubPages{bodies: map[string]string{
		"/countries": `[{"page":1,"pages":1,"total":2},[
			{"id":"BRA","iso2Code":"BR","name":"Brazil",
			 "region":{"id":"LCN","value":"Latin America & Caribbean"},
			 "incomeLevel":{"id":"UMC","value":"Upper middle income"},
			 "lendingType":{"id":"IBD","value":"IBRD"},
			 "capitalCity":"Brasilia","longitude":"-47.9292","latitude":"-15.7801"},
			{"id":"USA","iso2Code":"US","name":"United States",
			 "region":{"id":"NAC","value":"North America"},
			 "incomeLevel":{"id":"HIC","value":"High income"},
			 "lendingType":{"id":"LNX","value":"Not classified"},
			 "capitalCity":"Washington D.C.","longitude":"-77.032","latitude":"38.8895"}
		]]`,
	}}

	countries, err := New(pages).GetCountries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)

	assert.Equal(t, "BRA", countries[0].ID)
	assert.Equal(t, "BR", countries[0].ISO2Code)
	assert.Equal(t, "Brazil", countries[0].Name)
	assert.Equal(t, Ref{ID: "LCN", Value: "Latin America & Caribbean"}, countries[0].Region)
	assert.Equal(t, Ref{ID: "UMC", Value: "Upper middle income"}, countries[0].IncomeLevel)
	assert.Equal(t, "Brasilia", countries[0].CapitalCity)
	assert.Equal(t, "USA", countries[1].ID)
}

func TestGetIndicators(t *testing.T) {
	pages := &stubPages{bodies: map[string]string{
		"/indicators": `[{"page":1,"pages":1,"total":1},[
			{"id":"NY.GDP.MKTP.CD","name":"GDP (current US$)","unit":"",
			 "source":{"id":"2","value":"World Development Indicators"},
			 "sourceNote":"GDP at purchaser's prices...",
			 "sourceOrganization":"World Bank national accounts data.",
			 "topics":[{"id":"3","value":"Economy & Growth"}]}
		]]`,
	}}

	indicators, err := New(pages).GetIndicators(context.Background())
	require.NoError(t, err)
	require.Len(t, indicators, 1)

	ind := indicators[0]
	assert.Equal(t, "NY.GDP.MKTP.CD", ind.ID)
	assert.Equal(t, "GDP (current US$)", ind.Name)
	assert.Equal(t, Ref{ID: "2", Value: "World Development Indicators"}, ind.Source)
	require.Len(t, ind.Topics, 1)
	assert.Equal(t, "Economy & Growth", ind.Topics[0].Value)
}

func TestGetIndicatorData(t *testing.T) {
	pages := &stubPages{bodies: map[string]string{
		"/countries/BRA;USA/indicators/NY.GDP.MKTP.CD": `[{"page":1,"pages":1,"lastupdated":"2020-03-15"},[
			{"indicator":{"id":"NY.GDP.MKTP.CD","value":"GDP (current US$)"},
			 "country":{"id":"BR","value":"Brazil"},"countryiso3code":"BRA",
			 "date":"2019","value":1877815400000.55,"unit":"","obs_status":"","decimal":0},
			{"indicator":{"id":"NY.GDP.MKTP.CD","value":"GDP (current US$)"},
			 "country":{"id":"BR","value":"Brazil"},"countryiso3code":"BRA",
			 "date":"2018","value":null,"unit":"","obs_status":"","decimal":0}
		]]`,
	}}

	set, err := New(pages).GetIndicatorData(context.Background(), "NY.GDP.MKTP.CD", []string{"BRA", "USA"}, "2018:2019")
	require.NoError(t, err)
	require.Len(t, set.Points, 2)

	assert.Equal(t, "2019", set.Points[0].Date)
	require.NotNil(t, set.Points[0].Value)
	assert.InDelta(t, 1877815400000.55, *set.Points[0].Value, 0.01)
	assert.Nil(t, set.Points[1].Value, "missing observation must decode to nil")
	assert.Equal(t, "2020-03-15", set.LastUpdated.Format("2006-01-02"))
}

func TestSearchCountries(t *testing.T) {
	pages := &stubPages{bodies: map[string]string{
		"/countries": `[{"page":1,"pages":1},[
			{"id":"BRA","name":"Brazil"},
			{"id":"VGB","name":"British Virgin Islands"},
			{"id":"USA","name":"United States"}
		]]`,
	}}

	matched, err := New(pages).SearchCountries(context.Background(), "br")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "Brazil", matched[0].Name)
	assert.Equal(t, "British Virgin Islands", matched[1].Name)
}

func TestGetCountry_NotFound(t *testing.T) {
	pages := &stubPages{bodies: map[string]string{
		"/countries/XYZ": `[{"page":1,"pages":1,"total":0},[]]`,
	}}

	_, err := New(pages).GetCountry(context.Background(), "XYZ")
	assert.Error(t, err)
}

func TestWithBaseURL(t *testing.T) {
	pages := &stubPages{bodies: map[string]string{
		"/sources": `[{"page":1,"pages":1},[{"id":"2","name":"World Development Indicators"}]]`,
	}}

	c := New(pages, WithBaseURL("http://localhost:9999/v2/"))
	sources, err := c.GetSources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "World Development Indicators", sources[0].Name)
}
