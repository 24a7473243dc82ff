package cli

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"
)

func newPullbackCmd(opts *rootOpts) *cobra.Command {
	spec := &groupSpec{}
	var prec uint

	cmd := &cobra.Command{
		Use:   "pullback X Y",
		Short: "Reduce a point of the upper half-plane into the fundamental domain",
		Long: `Map the point X + iY into the fundamental domain of the selected
subgroup, printing the reduced point and the group element realizing it.

Precisions up to 53 bits use double-precision arithmetic; above that the
reduction runs in arbitrary precision.

Examples:
  modgroup pullback 0.2 0.5 --gamma0 5
  modgroup pullback 0.2 0.5 --gamma0 5 --prec 212`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			g, _, err := spec.build(logger)
			if err != nil {
				return err
			}
			if prec == 0 {
				prec = opts.cfg.Prec
			}

			w := cmd.OutOrStdout()
			if prec <= 53 {
				x, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("parse X: %w", err)
				}
				y, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("parse Y: %w", err)
				}
				xr, yr, b, err := g.Pullback(x, y)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "point:  %.15g + %.15gi\n", xr, yr)
				fmt.Fprintf(w, "matrix: %s\n", b)
				return nil
			}

			x, _, err := big.ParseFloat(args[0], 10, prec, big.ToNearestEven)
			if err != nil {
				return fmt.Errorf("parse X: %w", err)
			}
			y, _, err := big.ParseFloat(args[1], 10, prec, big.ToNearestEven)
			if err != nil {
				return fmt.Errorf("parse Y: %w", err)
			}
			xr, yr, b, err := g.PullbackPrec(x, y, prec)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "point:  %s + %si\n", xr.Text('g', -1), yr.Text('g', -1))
			fmt.Fprintf(w, "matrix: %s\n", b)
			return nil
		},
	}

	spec.addFlags(cmd)
	cmd.Flags().UintVar(&prec, "prec", 0, "working precision in bits (default from config, 53)")
	return cmd
}
