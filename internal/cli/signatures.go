package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/halfplane/modgroup/pkg/subgroup"
)

func newSignaturesCmd(opts *rootOpts) *cobra.Command {
	cusps := -1
	genus := -1
	nu2 := -1
	nu3 := -1

	cmd := &cobra.Command{
		Use:   "signatures INDEX",
		Short: "List admissible signatures for a given index",
		Long: `Enumerate every tuple (index; cusps, nu2, nu3; genus) satisfying the
Riemann-Hurwitz relation for the given index. Filters narrow the list;
whether a subgroup with a listed signature exists is not decided here.

Examples:
  modgroup signatures 12
  modgroup signatures 12 --genus 0 --cusps 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse INDEX: %w", err)
			}
			sigs, err := subgroup.ValidSignatures(index)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			shown := 0
			for _, s := range sigs {
				if cusps >= 0 && s.Cusps != cusps {
					continue
				}
				if genus >= 0 && s.Genus != genus {
					continue
				}
				if nu2 >= 0 && s.Nu2 != nu2 {
					continue
				}
				if nu3 >= 0 && s.Nu3 != nu3 {
					continue
				}
				fmt.Fprintf(w, "(%d; %d, %d, %d; %d)\n", s.Index, s.Cusps, s.Nu2, s.Nu3, s.Genus)
				shown++
			}
			loggerFromContext(cmd.Context()).Debug("signatures enumerated",
				"index", index, "total", len(sigs), "shown", shown)
			return nil
		},
	}

	cmd.Flags().IntVar(&cusps, "cusps", -1, "filter by number of cusps")
	cmd.Flags().IntVar(&genus, "genus", -1, "filter by genus")
	cmd.Flags().IntVar(&nu2, "nu2", -1, "filter by number of order-2 elliptic classes")
	cmd.Flags().IntVar(&nu3, "nu3", -1, "filter by number of order-3 elliptic classes")
	return cmd
}
