package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"shopfront/internal/domain"
	"shopfront/internal/query"
)

const (
	maxQ     = 80
	maxLabel = 40
	maxTags  = 10
	MaxLimit = 100
)

var (
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'.&+\-]+$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reLabel = regexp.MustCompile(`^[\p{L}\p{N} &'.\-]+$`)
	reTag   = regexp.MustCompile(`^[a-z0-9-]{1,24}$`)
)

// Q validates search text: trims, truncates and enforces allowed characters.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if r := []rune(s); len(r) > maxQ {
		s = string(r[:maxQ])
	}
	return s, reQ.MatchString(s)
}

// ID validates a product identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Label validates a category or brand name. Empty is allowed and means no
// constraint.
func Label(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > maxLabel {
		return "", false
	}
	return s, reLabel.MatchString(s)
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return QtyN(n)
}

// QtyN clamps a parsed quantity to [1, 50].
func QtyN(n int) int {
	if n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	} // clamp to avoid abuse
	return n
}

// Page defaults to 1 and never goes below it.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit clamps to [1, MaxLimit], falling back to def when s is empty or junk.
func Limit(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		n = def
	}
	return min(max(n, 1), MaxLimit)
}

// SortField accepts an empty value (no sort) or a field the engine can order by.
func SortField(s string) (domain.SortField, bool) {
	f := domain.SortField(strings.TrimSpace(s))
	if f == "" || query.ValidSortField(f) {
		return f, true
	}
	return "", false
}

// SortOrder defaults to ascending.
func SortOrder(s string) (domain.SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return domain.Asc, true
	case "desc":
		return domain.Desc, true
	}
	return "", false
}

func number(s string, lo, hi float64) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < lo || v > hi {
		return nil, false
	}
	return &v, true
}

// Price parses an optional non-negative bound.
func Price(s string) (*float64, bool) { return number(s, 0, 1e7) }

// Rating parses an optional bound in [0, 5].
func Rating(s string) (*float64, bool) { return number(s, 0, 5) }

func Bool(s string) (*bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, false
	}
	return &b, true
}

// Tags splits a comma list, lowercases and dedupes it. Any malformed tag
// rejects the whole list.
func Tags(s string) ([]string, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	var out []string
	seen := map[string]bool{}
	for _, t := range strings.Split(s, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if !reTag.MatchString(t) {
			return nil, false
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	if len(out) > maxTags {
		return nil, false
	}
	return out, true
}
