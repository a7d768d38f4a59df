package timeutil

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

var iso8601 = regexp.MustCompile(`(?i)^([-+]?)P(?:([-+]?[0-9]+)D)?(?:T(?:([-+]?[0-9]+)H)?(?:([-+]?[0-9]+)M)?(?:([-+]?[0-9]+)(?:[.,]([0-9]{0,9}))?S)?)?$`)

// IsISO8601 reports whether s is an ISO-8601 duration such as "PT10S".
func IsISO8601(s string) bool {
	return iso8601.MatchString(s)
}

// ParseISO8601 parses an ISO-8601 duration with day, hour, minute and
// (fractional) second components. Like Java's Duration.parse, a leading sign
// and per-component signs are accepted.
func ParseISO8601(s string) (time.Duration, error) {
	m := iso8601.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "") {
		return 0, errors.Errorf("invalid duration %s", s)
	}

	var total time.Duration
	for i, unit := range []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second} {
		component := m[2+i]
		if component == "" {
			continue
		}

		v, err := strconv.ParseInt(component, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid duration %s", s)
		}
		if absInt64(v) > (1<<63-1)/int64(unit) {
			return 0, errors.Errorf("invalid duration %s", s)
		}

		if total, err = addDuration(total, time.Duration(v)*unit); err != nil {
			return 0, errors.Wrapf(err, "invalid duration %s", s)
		}
	}

	if m[6] != "" {
		nanos, err := strconv.ParseInt((m[6] + "000000000")[:9], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid duration %s", s)
		}
		if total, err = addDuration(total, time.Duration(nanos)); err != nil {
			return 0, errors.Wrapf(err, "invalid duration %s", s)
		}
	}

	if m[1] == "-" {
		total = -total
	}
	return total, nil
}

// ParseDuration accepts both Go ("1m30s") and ISO-8601 ("PT1M30S") durations.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if IsISO8601(s) {
		return ParseISO8601(s)
	}
	return 0, errors.Errorf("invalid duration %s", s)
}

// StringToDurationHookFunc is a mapstructure hook decoding strings into
// time.Duration with ParseDuration.
func StringToDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return ParseDuration(data.(string))
	}
}

func addDuration(x, y time.Duration) (time.Duration, error) {
	r := x + y
	if (x^r)&(y^r) < 0 {
		return 0, errors.New("time.Duration overflow")
	}
	return r, nil
}

func absInt64(i int64) int64 {
	if i >= 0 {
		return i
	}
	return -i
}
