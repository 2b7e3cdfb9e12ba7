package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tkarvinen/spotadvisor-go/quarters"
	"github.com/tkarvinen/spotadvisor-go/types"
)

// Language is one of the closed set of supported locales. Adding a language
// means adding a constant and its messagePack below; there is no generic
// string-branch fallback.
type Language string

const (
	Finnish Language = "fi"
	English Language = "en"
	Swedish Language = "sv"
)

// Overridable so formatter tests control "today"/"tomorrow" wording.
var now = time.Now

// Parse maps a caller-supplied locale code onto the supported set.
func Parse(code string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := packs[lang]; !ok {
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedLanguage, code)
	}
	return lang, nil
}

func Supported() []Language {
	return []Language{Finnish, English, Swedish}
}

type tone int

const (
	toneCheap tone = iota
	toneNeutral
	toneExpensive
)

// messagePack holds everything one language variant needs to render an
// advisory. Each variant provides its own template functions; dispatch is
// by variant, not by comparing code strings at the call sites.
type messagePack struct {
	months       [12]string
	today        string
	tomorrow     string
	decimalComma bool
	dayTime      func(dayWord, hhmm string) string
	dateTime     func(day int, month, hhmm string) string
	window       func(minutes int, start, end, avg string) string
	coverage     func(covered int) string
	phrase       func(t tone) string
}

var packs = map[Language]messagePack{
	Finnish: {
		months: [12]string{"tammikuuta", "helmikuuta", "maaliskuuta", "huhtikuuta", "toukokuuta", "kesäkuuta",
			"heinäkuuta", "elokuuta", "syyskuuta", "lokakuuta", "marraskuuta", "joulukuuta"},
		today:        "tänään",
		tomorrow:     "huomenna",
		decimalComma: true,
		dayTime: func(dayWord, hhmm string) string {
			return fmt.Sprintf("%s kello %s", dayWord, hhmm)
		},
		dateTime: func(day int, month, hhmm string) string {
			return fmt.Sprintf("%d. %s kello %s", day, month, hhmm)
		},
		window: func(minutes int, start, end, avg string) string {
			return fmt.Sprintf("Halvin %d minuutin jakso alkaa %s ja päättyy %s, keskihinta %s senttiä.", minutes, start, end, avg)
		},
		coverage: func(covered int) string {
			return fmt.Sprintf("Jakso kattaa %d minuuttia.", covered)
		},
		phrase: func(t tone) string {
			switch t {
			case toneCheap:
				return "Sähkö on tuolloin selvästi keskimääräistä halvempaa."
			case toneExpensive:
				return "Sähkö on tuolloin keskimääräistä kalliimpaa."
			default:
				return "Hinta on lähellä tarkastelujakson keskitasoa."
			}
		},
	},
	English: {
		months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		today:    "today",
		tomorrow: "tomorrow",
		dayTime: func(dayWord, hhmm string) string {
			return fmt.Sprintf("%s at %s", dayWord, hhmm)
		},
		dateTime: func(day int, month, hhmm string) string {
			return fmt.Sprintf("%s %d at %s", month, day, hhmm)
		},
		window: func(minutes int, start, end, avg string) string {
			return fmt.Sprintf("The cheapest %d-minute window starts %s and ends %s, averaging %s cents.", minutes, start, end, avg)
		},
		coverage: func(covered int) string {
			return fmt.Sprintf("The window covers %d minutes.", covered)
		},
		phrase: func(t tone) string {
			switch t {
			case toneCheap:
				return "Electricity is clearly cheaper than average then."
			case toneExpensive:
				return "Electricity is more expensive than average then."
			default:
				return "The price is close to the horizon average."
			}
		},
	},
	Swedish: {
		months: [12]string{"januari", "februari", "mars", "april", "maj", "juni",
			"juli", "augusti", "september", "oktober", "november", "december"},
		today:        "idag",
		tomorrow:     "imorgon",
		decimalComma: true,
		dayTime: func(dayWord, hhmm string) string {
			return fmt.Sprintf("%s kl %s", dayWord, hhmm)
		},
		dateTime: func(day int, month, hhmm string) string {
			return fmt.Sprintf("%d %s kl %s", day, month, hhmm)
		},
		window: func(minutes int, start, end, avg string) string {
			return fmt.Sprintf("Den billigaste %d-minutersperioden börjar %s och slutar %s, medelpris %s cent.", minutes, start, end, avg)
		},
		coverage: func(covered int) string {
			return fmt.Sprintf("Perioden täcker %d minuter.", covered)
		},
		phrase: func(t tone) string {
			switch t {
			case toneCheap:
				return "Elen är då klart billigare än genomsnittet."
			case toneExpensive:
				return "Elen är då dyrare än genomsnittet."
			default:
				return "Priset ligger nära periodens genomsnitt."
			}
		},
	},
}

var (
	cheapFactor     = decimal.RequireFromString("0.9")
	expensiveFactor = decimal.RequireFromString("1.1")
)

// Format renders the chosen window as a short spoken-style advisory. Rounding
// to one decimal happens here only. The qualitative phrase compares the
// window's average against the horizon average, not an absolute threshold.
func Format(result types.WindowResult, lang Language) (string, error) {
	p, ok := packs[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedLanguage, string(lang))
	}

	parts := []string{p.window(
		result.RequestedMinutes,
		humanTime(result.Start, p),
		humanTime(result.End, p),
		formatPrice(result.AveragePrice, p),
	)}

	if covered := result.CoveredMinutes(); covered != result.RequestedMinutes {
		parts = append(parts, p.coverage(covered))
	}

	parts = append(parts, p.phrase(toneOf(result.AveragePrice, result.HorizonAverage)))

	return strings.Join(parts, " "), nil
}

func toneOf(avg, horizonAvg decimal.Decimal) tone {
	if avg.LessThan(horizonAvg.Mul(cheapFactor)) {
		return toneCheap
	}
	if avg.GreaterThan(horizonAvg.Mul(expensiveFactor)) {
		return toneExpensive
	}
	return toneNeutral
}

func formatPrice(price decimal.Decimal, p messagePack) string {
	s := price.StringFixed(1)
	if p.decimalComma {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

// humanTime renders an instant as "today/tomorrow at HH:MM" in the display
// timezone, falling back to a day-and-month form further out.
func humanTime(t time.Time, p messagePack) string {
	local := quarters.InDisplay(t)
	hhmm := local.Format("15:04")

	today := quarters.InDisplay(now())
	ty, tm, td := today.Date()
	ly, lm, ld := local.Date()

	if ly == ty && lm == tm && ld == td {
		return p.dayTime(p.today, hhmm)
	}
	ny, nm, nd := today.AddDate(0, 0, 1).Date()
	if ly == ny && lm == nm && ld == nd {
		return p.dayTime(p.tomorrow, hhmm)
	}
	return p.dateTime(ld, p.months[lm-1], hhmm)
}
