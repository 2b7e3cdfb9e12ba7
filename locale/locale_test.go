package locale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkarvinen/spotadvisor-go/types"
)

// All tests pin "now" so today/tomorrow wording is deterministic.
var testNow = time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

func withFixedNow(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return testNow }
	t.Cleanup(func() { now = prev })
}

func sampleResult() types.WindowResult {
	return types.WindowResult{
		Start:               time.Date(2026, 8, 27, 13, 0, 0, 0, time.UTC),
		End:                 time.Date(2026, 8, 27, 16, 0, 0, 0, time.UTC),
		AveragePrice:        decimal.RequireFromString("1.255"),
		HorizonAverage:      decimal.RequireFromString("1.3"),
		RequestedMinutes:    180,
		IsCheapestInHorizon: true,
	}
}

func TestParse(t *testing.T) {
	for _, code := range []string{"fi", "FI", " sv ", "en"} {
		if _, err := Parse(code); err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", code, err)
		}
	}
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("de")
	assert.ErrorIs(t, err, types.ErrUnsupportedLanguage)
}

func TestFormatUnsupported(t *testing.T) {
	_, err := Format(sampleResult(), Language("no"))
	assert.ErrorIs(t, err, types.ErrUnsupportedLanguage)
}

func TestFormatFinnish(t *testing.T) {
	withFixedNow(t)

	msg, err := Format(sampleResult(), Finnish)
	require.NoError(t, err)
	assert.Equal(t,
		"Halvin 180 minuutin jakso alkaa tänään kello 13:00 ja päättyy tänään kello 16:00, keskihinta 1,3 senttiä. "+
			"Hinta on lähellä tarkastelujakson keskitasoa.",
		msg)
}

func TestFormatEnglishUsesDecimalPoint(t *testing.T) {
	withFixedNow(t)

	msg, err := Format(sampleResult(), English)
	require.NoError(t, err)
	assert.Contains(t, msg, "averaging 1.3 cents")
	assert.Contains(t, msg, "starts today at 13:00")
}

func TestFormatSwedish(t *testing.T) {
	withFixedNow(t)

	msg, err := Format(sampleResult(), Swedish)
	require.NoError(t, err)
	assert.Contains(t, msg, "Den billigaste 180-minutersperioden")
	assert.Contains(t, msg, "idag kl 13:00")
	assert.Contains(t, msg, "medelpris 1,3 cent")
}

func TestFormatTomorrowAndDateForms(t *testing.T) {
	withFixedNow(t)

	res := sampleResult()
	res.Start = testNow.AddDate(0, 0, 1)
	res.End = res.Start.Add(3 * time.Hour)

	msg, err := Format(res, English)
	require.NoError(t, err)
	assert.Contains(t, msg, "starts tomorrow at 10:00")

	res.Start = time.Date(2026, 10, 2, 13, 45, 0, 0, time.UTC)
	res.End = res.Start.Add(3 * time.Hour)
	msg, err = Format(res, Finnish)
	require.NoError(t, err)
	assert.Contains(t, msg, "2. lokakuuta kello 13:45")
}

func TestFormatMentionsCoverageWhenRoundedUp(t *testing.T) {
	withFixedNow(t)

	res := sampleResult()
	res.RequestedMinutes = 170 // 12 slots, 180 minutes of coverage

	msg, err := Format(res, English)
	require.NoError(t, err)
	assert.Contains(t, msg, "The window covers 180 minutes.")
}

func TestFormatQualitativePhrase(t *testing.T) {
	withFixedNow(t)

	res := sampleResult()
	res.HorizonAverage = decimal.RequireFromString("10")

	msg, err := Format(res, English)
	require.NoError(t, err)
	assert.Contains(t, msg, "clearly cheaper than average")

	res.AveragePrice = decimal.RequireFromString("12")
	msg, err = Format(res, English)
	require.NoError(t, err)
	assert.Contains(t, msg, "more expensive than average")

	res.AveragePrice = decimal.RequireFromString("10.5")
	msg, err = Format(res, English)
	require.NoError(t, err)
	assert.Contains(t, msg, "close to the horizon average")
}
