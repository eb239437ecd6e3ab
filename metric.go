package forecast

import (
	"slices"
	"strings"
)

// Metric identifies one tracked economic indicator.
//
// The set of metrics is closed: any other identifier is rejected with an
// UnknownMetricError rather than being reported as a missing value.
type Metric string

const (
	CPI              Metric = "cpi"
	RPI              Metric = "rpi"
	CPIH             Metric = "cpih"
	AverageEarnings  Metric = "average_earnings"
	MortgageInterest Metric = "mortgage_interest"
	Rent             Metric = "rent"
	HousePrices      Metric = "house_prices"
)

// metricInfo holds presentation metadata for a metric.
type metricInfo struct {
	title string
	group string
	usage string // markdown
}

// metrics lists the closed set in canonical order.
var metrics = []Metric{CPI, RPI, CPIH, AverageEarnings, MortgageInterest, Rent, HousePrices}

var metricInfos = map[Metric]metricInfo{
	CPI: {
		title: "CPI inflation (%)",
		group: "Inflation",
		usage: "**Used in PolicyEngine to uprate:** _Universal Credit, PIP, Child Benefit, State Pension_ " +
			"and 44 other benefits and consumption variables. Also used for absolute poverty thresholds, " +
			"triple lock calculations, and real-terms analysis.",
	},
	RPI: {
		title: "RPI inflation (%)",
		group: "Inflation",
		usage: "**Used in PolicyEngine for:** _Private pension uprating_ and fuel duty projections. " +
			"RPI remains important for student loan interest rates and some legacy pension schemes.",
	},
	CPIH: {
		title: "CPIH inflation (%)",
		group: "Inflation",
		usage: "**Used in PolicyEngine for:** _After-housing-costs (AHC) deflator_ calculations. " +
			"CPIH includes owner occupiers' housing costs, making it useful for real-terms comparisons " +
			"that account for housing.",
	},
	AverageEarnings: {
		title: "Average earnings growth (%)",
		group: "Labour market",
		usage: "**Used in PolicyEngine to uprate:** _Employment income, pension contributions, student loan " +
			"repayments_ (6 variables). Also used in triple lock calculations for State Pension.",
	},
	MortgageInterest: {
		title: "Mortgage interest growth (%)",
		group: "Housing",
		usage: "**Used in PolicyEngine to uprate:** _Mortgage interest repayments_. " +
			"Affects housing cost projections for owner-occupiers with mortgages.",
	},
	Rent: {
		title: "Rent growth (%)",
		group: "Housing",
		usage: "**Used in PolicyEngine to uprate:** _Private rent_ for households in the private rented sector.",
	},
	HousePrices: {
		title: "House price growth (%)",
		group: "Housing",
		usage: "**Used in PolicyEngine for:** Stamp duty projections and property value calculations.",
	},
}

// Metrics returns every known metric in canonical order.
func Metrics() []Metric { return slices.Clone(metrics) }

// ParseMetric returns the metric named s.
//
// Matching is exact after trimming spaces: "CPI" is not "cpi".
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.TrimSpace(s))
	if !m.Valid() {
		return "", &UnknownMetricError{Metric: s}
	}
	return m, nil
}

// Valid reports whether m belongs to the closed set of metrics.
func (m Metric) Valid() bool {
	_, ok := metricInfos[m]
	return ok
}

// validate returns an UnknownMetricError if m is not a known metric.
func (m Metric) validate() error {
	if !m.Valid() {
		return &UnknownMetricError{Metric: string(m)}
	}
	return nil
}

func (m Metric) String() string { return string(m) }

// Title returns a human title such as "CPI inflation (%)".
func (m Metric) Title() string {
	if info, ok := metricInfos[m]; ok {
		return info.title
	}
	return string(m)
}

// Group returns the family of the metric: Inflation, Labour market or Housing.
func (m Metric) Group() string { return metricInfos[m].group }

// Usage returns a markdown paragraph describing what the metric is used for.
func (m Metric) Usage() string { return metricInfos[m].usage }

// index returns the canonical position of m, or -1.
func (m Metric) index() int { return slices.Index(metrics, m) }
