package sensor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

var readFileFn = os.ReadFile

type Fan struct {
	RPM  int
	Path string
}

// ResolveSensorPath returns the lexicographically first regular file matching
// pattern. The hwmon index in sysfs paths is assigned at boot, so the fan file
// has to be looked up on every read.
func ResolveSensorPath(pattern string) (string, bool) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", false
	}
	sort.Strings(matches)

	for _, match := range matches {
		fi, err := os.Stat(match)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		return match, true
	}
	return "", false
}

// ReadFanRPM reads the fan speed from the first file matching pattern.
func ReadFanRPM(pattern string) (Fan, error) {
	path, ok := ResolveSensorPath(pattern)
	if !ok {
		return Fan{}, &Error{
			Kind:    ErrSensorFileNotFound,
			Message: "Fan rpm file not found",
		}
	}

	b, err := readFileFn(path)
	if err != nil {
		return Fan{}, &Error{
			Kind:    ErrSensorRead,
			Message: fmt.Sprintf("Failed to read fan rpm: %s", err),
			Path:    path,
			Err:     err,
		}
	}

	if !utf8.Valid(b) {
		err := errors.New("invalid UTF-8")
		return Fan{}, &Error{
			Kind:    ErrSensorRead,
			Message: fmt.Sprintf("Failed to read fan rpm: %s", err),
			Path:    path,
			Err:     err,
		}
	}

	content := strings.TrimSpace(string(b))
	rpm, err := strconv.Atoi(content)
	if err != nil {
		return Fan{}, &Error{
			Kind:    ErrSensorParse,
			Message: fmt.Sprintf("Invalid rpm value: %s", quoteValue(content)),
			Path:    path,
			Err:     err,
		}
	}

	return Fan{RPM: rpm, Path: path}, nil
}

// quoteValue quotes s with single quotes, or with double quotes if s holds a
// single quote and no double quote. Control characters are escaped.
func quoteValue(s string) string {
	q := strconv.Quote(s)
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return q
	}
	inner := q[1 : len(q)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, "'", `\'`)
	return "'" + inner + "'"
}

// FanPercent is rpm as a percentage of maxRPM rounded to one decimal, half to
// even on the exact binary value. ok is false if maxRPM is not positive.
func FanPercent(rpm, maxRPM int) (percent float64, ok bool) {
	if maxRPM <= 0 {
		return 0, false
	}
	p := float64(rpm) / float64(maxRPM) * 100
	percent, err := strconv.ParseFloat(strconv.FormatFloat(p, 'f', 1, 64), 64)
	if err != nil {
		return 0, false
	}
	return percent, true
}
