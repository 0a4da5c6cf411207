// Package cli provides the Cobra-based CLI for stockdesk.
package cli

import (
	"bufio"
	"fmt"
	"strings"

	"stockdesk/config"
	"stockdesk/domain"
	"stockdesk/inventory"
	"stockdesk/logger"
	"stockdesk/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every command of one session. The shell
// reuses the same app for each line so an in-memory store survives between
// commands.
type app struct {
	v       *viper.Viper
	log     zerolog.Logger
	store   domain.ProductStore
	advisor *inventory.Service
}

func newApp() *app {
	return &app{v: viper.New(), log: zerolog.Nop()}
}

// setup resolves configuration and opens the store on first use. A store
// already present on the app (tests, shell) is kept as is.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.store == nil {
		cfg, err := config.Load(a.v)
		if err != nil {
			return err
		}
		a.log = logger.New(logger.Config{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Out:    cmd.ErrOrStderr(),
		})
		a.store, err = store.Open(cmd.Context(), cfg)
		if err != nil {
			a.log.Error().Err(err).Str("store", cfg.Store).Msg("open store failed")
			return err
		}
		a.log.Debug().Str("store", cfg.Store).Str("store_file", cfg.StoreFile).Msg("store opened")
	}
	if a.advisor == nil {
		a.advisor = inventory.NewService(a.store, a.log)
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "stockdesk",
		Short:             "Inventory desk with reorder recommendations",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().String("store", store.KindMemory, "store backend: memory|file")
	root.PersistentFlags().String("store-file", "data/products.json", "file store path")
	root.PersistentFlags().String("config", "", "config file")
	root.PersistentFlags().String("log-level", "info", "log level")
	root.PersistentFlags().String("log-format", "console", "log format: console|json")
	root.PersistentFlags().Bool("seed", true, "load the sample catalog into an empty store")
	for _, name := range []string{"store", "store-file", "config", "log-level", "log-format", "seed"} {
		_ = a.v.BindPFlag(name, root.PersistentFlags().Lookup(name))
	}

	root.AddCommand(
		newCreateCmd(a),
		newGetCmd(a),
		newUpdateCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newRecommendCmd(a),
		newApplyCmd(a),
		newSimulateCmd(a),
		newCompareCmd(a),
		newSummaryCmd(a),
		newAlertsCmd(a),
		newShellCmd(a),
	)
	return root
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			for {
				fmt.Fprint(out, "stockdesk> ")
				line, err := r.ReadString('\n')
				line = strings.TrimSpace(line)
				if line == "exit" || line == "quit" {
					return nil
				}
				if args := strings.Fields(line); len(args) > 0 && args[0] != "shell" {
					sub := newRootCmd(a)
					sub.SetIn(r)
					sub.SetOut(out)
					sub.SetErr(cmd.ErrOrStderr())
					sub.SetArgs(args)
					if err := sub.ExecuteContext(cmd.Context()); err != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), err)
					}
				}
				if err != nil {
					return nil
				}
			}
		},
	}
}

// Execute runs the stockdesk command tree against os.Args.
func Execute() error {
	return newRootCmd(newApp()).Execute()
}
