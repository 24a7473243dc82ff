package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/halfplane/modgroup/pkg/cache"
	"github.com/halfplane/modgroup/pkg/perm"
	"github.com/halfplane/modgroup/pkg/subgroup"
)

// groupSpec holds the flags selecting a group: either a Gamma0 level or a
// pair of permutation strings.
type groupSpec struct {
	gamma0 int64
	perms  []string
}

func (s *groupSpec) addFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&s.gamma0, "gamma0", 0, "build Gamma0(N) for the given level")
	cmd.Flags().StringArrayVar(&s.perms, "perms", nil,
		`generating permutations, given twice: images of S then R, in cycle ("(1 2)(3 4)") or one-line ("2 1 4 3") notation`)
}

// build constructs the selected group and its cache key.
func (s *groupSpec) build(logger *log.Logger) (*subgroup.Group, string, error) {
	switch {
	case s.gamma0 > 0 && len(s.perms) > 0:
		return nil, "", fmt.Errorf("--gamma0 and --perms are mutually exclusive")
	case s.gamma0 > 0:
		g, err := subgroup.NewGamma0(s.gamma0, subgroup.WithLogger(logger))
		if err != nil {
			return nil, "", err
		}
		return g, cache.Gamma0Key(s.gamma0), nil
	case len(s.perms) == 2:
		n := maxDegree(s.perms[0])
		if m := maxDegree(s.perms[1]); m > n {
			n = m
		}
		if n == 0 {
			return nil, "", fmt.Errorf("could not infer the number of cosets from %q", s.perms)
		}
		pS, err := perm.Parse(s.perms[0], n)
		if err != nil {
			return nil, "", err
		}
		pR, err := perm.Parse(s.perms[1], n)
		if err != nil {
			return nil, "", err
		}
		g, err := subgroup.New(pS, pR, subgroup.WithLogger(logger))
		if err != nil {
			return nil, "", err
		}
		return g, cache.ModelKey(pS.List(), pR.List()), nil
	case len(s.perms) != 0:
		return nil, "", fmt.Errorf("--perms must be given exactly twice, got %d", len(s.perms))
	default:
		return nil, "", fmt.Errorf("select a group with --gamma0 N or --perms A --perms B")
	}
}

// maxDegree infers the number of cosets from a permutation string: the
// field count for one-line notation, the largest point for cycle notation.
func maxDegree(s string) int {
	t := strings.TrimSpace(s)
	cycles := strings.HasPrefix(t, "(")
	fields := strings.FieldsFunc(t, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '_' || r == '\t' ||
			r == '(' || r == ')' || r == '[' || r == ']'
	})
	n := 0
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0
		}
		if cycles {
			if v > n {
				n = v
			}
		} else {
			n++
		}
	}
	return n
}
