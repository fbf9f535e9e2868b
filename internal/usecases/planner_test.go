package usecases

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/openpaddle/paddle-planner/internal/classes"
	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

// fakeGauges serves canned readings keyed by site ID.
type fakeGauges struct {
	readings map[string]float64
	errSites map[string]error
}

func (f *fakeGauges) LatestReading(siteID string, metric entities.Metric) (*entities.GaugeReading, error) {
	if err, ok := f.errSites[siteID]; ok {
		return nil, err
	}
	value, ok := f.readings[siteID]
	if !ok {
		return nil, nil
	}
	return &entities.GaugeReading{
		SiteID:    siteID,
		Value:     value,
		Timestamp: time.Date(2026, 6, 14, 8, 0, 0, 0, time.UTC),
		Metric:    metric,
	}, nil
}

// fakeGeocoder serves coordinates keyed by zip.
type fakeGeocoder struct {
	coords map[string][2]float64
}

func (f *fakeGeocoder) CoordinatesForZip(zip string) (float64, float64, error) {
	c, ok := f.coords[zip]
	if !ok {
		return 0, 0, fmt.Errorf("unknown zip %s", zip)
	}
	return c[0], c[1], nil
}

// fakeWeather returns the same sample everywhere, tagging forecast samples
// with a precipitation probability.
type fakeWeather struct {
	windSpeed float64
	err       error
	noData    bool
}

func (f *fakeWeather) CurrentSample(lat, lon float64) (*entities.WeatherSample, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.noData {
		return nil, nil
	}
	return &entities.WeatherSample{Temperature: 75, WindSpeed: f.windSpeed, WindGusts: f.windSpeed + 2}, nil
}

func (f *fakeWeather) ForecastSample(lat, lon float64, date time.Time) (*entities.WeatherSample, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.noData {
		return nil, nil
	}
	prob := 10.0
	return &entities.WeatherSample{Temperature: 75, WindSpeed: f.windSpeed, WindGusts: f.windSpeed + 2, PrecipProbability: &prob}, nil
}

var testNow = time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)

func testCatalog() []entities.RiverSpec {
	return []entities.RiverSpec{
		{Name: "Flat Creek", Class: "A", Whitewater: 0, Zipcode: "15001", GaugeID: "03049500", MinLevel: fp(3.0), MaxLevel: fp(8.0)},
		{Name: "Easy River", Class: "I-II", Whitewater: 2, Zipcode: "15002", GaugeID: "03050000", MinLevel: fp(2.0), MaxLevel: fp(6.0)},
		{Name: "Big Rapids", Class: "III-IV", Whitewater: 4, Zipcode: "15003", GaugeID: "03051000", MinCFS: fp(200.0), MaxCFS: fp(900.0)},
	}
}

func testPlanner(gauges *fakeGauges, weather *fakeWeather, geocoder *fakeGeocoder) *Planner {
	if gauges == nil {
		gauges = &fakeGauges{readings: map[string]float64{
			"03049500": 6.0,
			"03050000": 4.0,
			"03051000": 500.0,
		}}
	}
	if weather == nil {
		weather = &fakeWeather{windSpeed: 4}
	}
	if geocoder == nil {
		geocoder = &fakeGeocoder{coords: map[string][2]float64{
			"15222": {40.44, -80.00},
			"15001": {40.50, -80.10},
			"15002": {40.60, -80.20},
			"15003": {41.50, -78.50},
		}}
	}
	return NewPlanner(testCatalog(), gauges, weather, geocoder)
}

func TestParseTargetDate(t *testing.T) {
	target, err := ParseTargetDate("2026-06-20", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), target)

	today, err := ParseTargetDate("", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), today)

	_, err = ParseTargetDate("June 20", testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestCheckTodayRanksAllRivers(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	results := p.CheckToday(testNow, Options{HomeZip: "15222"})
	require.Len(t, results, 3)

	// Ranked descending by score.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].OverallScore, results[i].OverallScore)
	}

	for _, r := range results {
		assert.True(t, r.IsToday)
		assert.NotNil(t, r.Water)
		assert.NotNil(t, r.Conditions)
		assert.NotEmpty(t, r.Recommendation)
		assert.NotNil(t, r.DistanceMiles)
	}
}

func TestCheckTodayIsDeterministic(t *testing.T) {
	p := testPlanner(nil, nil, nil)
	opts := Options{HomeZip: "15222"}

	first := p.CheckToday(testNow, opts)
	second := p.CheckToday(testNow, opts)
	assert.Equal(t, first, second)
}

func TestCheckDateRejectsBadDate(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	_, err := p.CheckDate("tomorrow", testNow, Options{})
	require.Error(t, err)
}

func TestFutureDateCarriesGaugeApproximationIssue(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	results, err := p.CheckDate("2026-06-20", testNow, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.False(t, r.IsToday)
		assert.Contains(t, r.Issues, "Water status based on current gauge reading; gauge forecasts are not available")
		// Forecast samples drive the weather assessment on future dates.
		require.NotNil(t, r.Conditions)
		assert.True(t, r.Conditions.IsForecast())
	}
}

func TestWhitewaterFilterExcludesAtOrAbove(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	results := p.CheckToday(testNow, Options{MaxWhitewater: ip(3)})

	assert.ElementsMatch(t, []string{"Flat Creek", "Easy River"}, resultNames(results))
}

func TestNegativeWhitewaterFilterKeepsMinimum(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	results := p.CheckToday(testNow, Options{MaxWhitewater: ip(-3)})

	require.Len(t, results, 1)
	assert.Equal(t, "Big Rapids", results[0].Name)
}

func TestDistanceFilterExcludesFarRivers(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	// Big Rapids sits about 100 miles out; everything else is within 25.
	results := p.CheckToday(testNow, Options{HomeZip: "15222", MaxDistanceMiles: fp(50)})

	names := resultNames(results)
	assert.NotContains(t, names, "Big Rapids")
	assert.Len(t, names, 2)
}

func TestClassRangeFilter(t *testing.T) {
	p := testPlanner(nil, nil, nil)
	r := classes.Range{Min: 1, Max: 2}

	results := p.CheckToday(testNow, Options{ClassRange: &r})

	require.Len(t, results, 1)
	assert.Equal(t, "Easy River", results[0].Name)
}

func TestGaugeFailureDegradesInsteadOfAborting(t *testing.T) {
	gauges := &fakeGauges{
		readings: map[string]float64{"03050000": 4.0, "03051000": 500.0},
		errSites: map[string]error{"03049500": errors.New("connection refused")},
	}
	p := testPlanner(gauges, nil, nil)

	results := p.CheckToday(testNow, Options{})
	require.Len(t, results, 3)

	var flat *entities.RiverEvaluation
	for i := range results {
		if results[i].Name == "Flat Creek" {
			flat = &results[i]
		}
	}
	require.NotNil(t, flat)
	assert.Equal(t, entities.WaterError, flat.Water.Status)
	require.NotEmpty(t, flat.Issues)
	assert.Contains(t, flat.Issues[0], "Water data unavailable")
}

func TestWeatherFailureDegradesInsteadOfAborting(t *testing.T) {
	p := testPlanner(nil, &fakeWeather{err: errors.New("timeout")}, nil)

	results := p.CheckToday(testNow, Options{})
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Nil(t, r.Conditions)
		assert.NotEmpty(t, r.Issues)
	}
}

func TestMissingGeocodeDisablesDistanceAndWeather(t *testing.T) {
	geocoder := &fakeGeocoder{coords: map[string][2]float64{}}
	p := testPlanner(nil, nil, geocoder)

	results := p.CheckToday(testNow, Options{HomeZip: "15222"})
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Nil(t, r.DistanceMiles)
		assert.Contains(t, r.Issues, "Weather data unavailable")
	}
}

func TestDayScore(t *testing.T) {
	assert.Equal(t, 0.0, DayScore(nil))
	assert.Equal(t, 42.5, DayScore([]entities.RiverEvaluation{{OverallScore: 42.5}}))
	assert.Equal(t, 70.0, DayScore([]entities.RiverEvaluation{
		{OverallScore: 80},
		{OverallScore: 60},
		{OverallScore: 10}, // only the top two count
	}))
}

func TestBestRiver(t *testing.T) {
	assert.Nil(t, BestRiver(nil))
	assert.Nil(t, BestRiver([]entities.RiverEvaluation{{Name: "Meh", OverallScore: 59.9}}))

	best := BestRiver([]entities.RiverEvaluation{{Name: "Winner", OverallScore: 60.0}})
	require.NotNil(t, best)
	assert.Equal(t, "Winner", best.Name)
}

func TestWeeklyForecastCoversSevenDays(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	days := p.WeeklyForecast(testNow, Options{HomeZip: "15222"})
	require.Len(t, days, 7)

	// Sorted descending by day score.
	for i := 1; i < len(days); i++ {
		assert.GreaterOrEqual(t, days[i-1].DayScore, days[i].DayScore)
	}

	// All dates fall within tomorrow through 7 days out.
	seen := map[string]bool{}
	for _, d := range days {
		seen[d.Date.Format("2006-01-02")] = true
		assert.Equal(t, d.Date.Weekday().String(), d.DayName)
	}
	for offset := 1; offset <= 7; offset++ {
		date := testNow.AddDate(0, 0, offset).Format("2006-01-02")
		assert.True(t, seen[date], "missing day %s", date)
	}
}

func TestWeeklyForecastTiesKeepChronologicalOrder(t *testing.T) {
	// Identical conditions every day produce identical scores; the stable
	// sort must keep the days chronological.
	p := testPlanner(nil, nil, nil)

	days := p.WeeklyForecast(testNow, Options{})
	require.Len(t, days, 7)
	for i := 1; i < len(days); i++ {
		if days[i-1].DayScore == days[i].DayScore {
			assert.True(t, days[i-1].Date.Before(days[i].Date))
		}
	}
}

func TestWhitewaterForecastPreset(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	days := p.WhitewaterForecast(testNow, Options{HomeZip: "15222"})
	require.Len(t, days, 7)

	for _, d := range days {
		for _, r := range d.Rivers {
			assert.GreaterOrEqual(t, r.Whitewater, 3)
		}
	}
}

func TestCasualForecastPreset(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	days := p.CasualForecast(testNow, Options{HomeZip: "15222"}, "")
	require.Len(t, days, 7)

	for _, d := range days {
		for _, r := range d.Rivers {
			assert.Less(t, r.Whitewater, 3)
		}
	}
}

func TestCasualForecastCloseProximityCapsDistance(t *testing.T) {
	p := testPlanner(nil, nil, nil)

	days := p.CasualForecast(testNow, Options{HomeZip: "15222"}, "close")

	for _, d := range days {
		for _, r := range d.Rivers {
			require.NotNil(t, r.DistanceMiles)
			assert.LessOrEqual(t, *r.DistanceMiles, 30.0)
		}
	}
}

func TestMultiSiteStatus(t *testing.T) {
	gauges := &fakeGauges{
		readings: map[string]float64{"03049500": 6.0},
		errSites: map[string]error{"03051000": errors.New("boom")},
	}
	p := testPlanner(gauges, nil, nil)

	statuses := p.MultiSiteStatus([]SiteConfig{
		{Name: "Acmetonia", SiteID: "03049500", MinLevel: fp(3.0), MaxLevel: fp(8.0)},
		{Name: "No Data", SiteID: "03050000", MinLevel: fp(2.0), MaxLevel: fp(6.0)},
		{Name: "Broken", SiteID: "03051000", MinCFS: fp(200.0), MaxCFS: fp(900.0)},
	})

	require.Len(t, statuses, 3)
	assert.Equal(t, entities.WaterGood, statuses[0].Status.Status)
	assert.Equal(t, entities.WaterNoData, statuses[1].Status.Status)
	assert.Equal(t, entities.WaterError, statuses[2].Status.Status)
}

func resultNames(results []entities.RiverEvaluation) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	return names
}
