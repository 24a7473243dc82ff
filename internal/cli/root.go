package cli

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version, usually
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts carries the persistent flag values shared by all commands.
type rootOpts struct {
	verbose    bool
	configPath string
	noCache    bool
	cfg        Config
}

// RootCommand builds the modgroup command tree.
func RootCommand() *cobra.Command {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "modgroup",
		Short:        "modgroup computes finite-index subgroups of the modular group",
		Long:         `modgroup builds finite-index subgroups of PSL(2,Z) from permutation pairs or Gamma0 levels: coset representatives, cusps and widths, the signature, congruence and symmetry tests, and pullback to the fundamental domain.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))

			path, explicit := opts.configPath, opts.configPath != ""
			if !explicit {
				path = defaultConfigPath()
			}
			cfg, err := loadConfig(path, explicit)
			if err != nil {
				return err
			}
			if opts.noCache {
				cfg.CacheBackend = "none"
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("modgroup %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to TOML config file")
	root.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable the model cache")

	root.AddCommand(newInfoCmd(opts))
	root.AddCommand(newPullbackCmd(opts))
	root.AddCommand(newSignaturesCmd(opts))
	root.AddCommand(newCacheCmd(opts))

	return root
}

// Execute runs the modgroup CLI.
func Execute() error {
	return RootCommand().Execute()
}
