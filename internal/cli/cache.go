package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halfplane/modgroup/pkg/cache"
)

func newCacheCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the model cache",
	}
	cmd.AddCommand(newCacheInfoCmd(opts))
	cmd.AddCommand(newCacheClearCmd(opts))
	return cmd
}

func newCacheInfoCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print cache backend, location and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.cfg.openCache(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "backend: %s\n", opts.cfg.CacheBackend)
			if fc, ok := c.(*cache.FileCache); ok {
				entries, size, err := fc.Info()
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "dir:     %s\n", fc.Dir())
				fmt.Fprintf(w, "entries: %d\n", entries)
				fmt.Fprintf(w, "size:    %d bytes\n", size)
			}
			return nil
		},
	}
}

func newCacheClearCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached models",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.cfg.openCache(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			cl, ok := c.(cache.Clearer)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "cache backend holds nothing to clear")
				return nil
			}
			if err := cl.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
}
