package perm

import (
	"strconv"
	"strings"

	"github.com/halfplane/modgroup/pkg/errors"
)

// Parse builds a permutation on n points from a string in either cycle
// notation ("(1 2)(3 4)") or one-line notation ("2 1 4 3", "[2_1_4_3]",
// "2,1,4,3"). Cycle input is detected by a leading parenthesis.
func Parse(s string, n int) (Perm, error) {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "(") {
		return ParseCycles(t, n)
	}
	return ParseOneLine(t, n)
}

// ParseCycles builds a permutation on n points from cycle notation.
// Cycles are parenthesized groups of points separated by spaces, commas or
// semicolons; points absent from every cycle are fixed. "()" is the
// identity.
func ParseCycles(s string, n int) (Perm, error) {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "(") || !strings.HasSuffix(t, ")") {
		return Perm{}, errors.New(errors.CodeInvalidFormat,
			"cycle notation must be wrapped in parentheses: %q", s)
	}
	img := make([]int, n)
	for i := range img {
		img[i] = i + 1
	}
	body := t[1 : len(t)-1]
	if strings.TrimSpace(body) == "" {
		return Perm{img: img}, nil
	}
	for _, cyc := range strings.Split(body, ")(") {
		pts, err := splitInts(cyc)
		if err != nil {
			return Perm{}, err
		}
		for _, x := range pts {
			if x < 1 || x > n {
				return Perm{}, errors.New(errors.CodeInvalidFormat,
					"cycle point %d outside 1..%d", x, n)
			}
		}
		for i := 0; i < len(pts)-1; i++ {
			img[pts[i]-1] = pts[i+1]
		}
		if len(pts) > 1 {
			img[pts[len(pts)-1]-1] = pts[0]
		}
	}
	return New(img)
}

// ParseOneLine builds a permutation from one-line notation: the images of
// 1..n in order, separated by spaces, commas or underscores, with optional
// surrounding brackets. n must match the number of values.
func ParseOneLine(s string, n int) (Perm, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "[")
	t = strings.TrimSuffix(t, "]")
	vals, err := splitInts(t)
	if err != nil {
		return Perm{}, err
	}
	if len(vals) != n {
		return Perm{}, errors.New(errors.CodeInvalidFormat,
			"one-line permutation has %d values, want %d", len(vals), n)
	}
	return New(vals)
}

// splitInts parses a list of integers separated by spaces, commas,
// semicolons or underscores.
func splitInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '_' || r == '\t'
	})
	vals := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.New(errors.CodeInvalidFormat, "not an integer: %q", f)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
