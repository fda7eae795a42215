package recommend

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var stipendNumberRe = regexp.MustCompile(`\d[\d,]*`)

// ParseStipend extracts the first integer amount from free-form stipend
// text ("₹8,000/month", "5000-8000", "8000"). Nil means the text holds
// no usable number; downstream treats that as "unspecified", which is
// deliberately different from a low stipend.
func ParseStipend(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.EqualFold(raw, "unpaid") {
		zero := int64(0)
		return &zero
	}
	match := stipendNumberRe.FindString(raw)
	if match == "" {
		return nil
	}
	value, err := strconv.ParseInt(strings.ReplaceAll(match, ",", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// ParseDate tries the date formats seen in catalog exports; nil on
// failure, never an error.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// ScoreStipend returns 100 when the listing stipend meets the user's
// minimum and degrades proportionally with the shortfall. An unknown
// stipend gets the neutral default: "unspecified" is not "too low".
func ScoreStipend(stipend *int64, minStipend int64, neutral float64) float64 {
	if stipend == nil {
		return neutral
	}
	if minStipend <= 0 || *stipend >= minStipend {
		return 100
	}
	if *stipend <= 0 {
		return 0
	}
	return 100 * float64(*stipend) / float64(minStipend)
}

// deadlineDecayPerDay controls how quickly a deadline that closes
// before the candidate is available drains the score.
const deadlineDecayPerDay = 2.0

// ScoreDeadline returns 100 when the application deadline falls on or
// after the date the user becomes available, and decays by
// deadlineDecayPerDay points per day the deadline precedes it. An
// unparseable deadline gets the neutral default; an unknown
// availability date imposes no constraint and scores full.
func ScoreDeadline(deadline, availableFrom *time.Time, neutral float64) float64 {
	if deadline == nil {
		return neutral
	}
	if availableFrom == nil {
		return 100
	}
	if !deadline.Before(*availableFrom) {
		return 100
	}
	daysEarly := availableFrom.Sub(*deadline).Hours() / 24
	score := 100 - deadlineDecayPerDay*daysEarly
	if score < 0 {
		return 0
	}
	return score
}
