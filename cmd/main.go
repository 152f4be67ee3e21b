package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shuldan/modular/pkg/bootstrap"
	"github.com/shuldan/modular/pkg/modular"
)

var (
	configPaths []string
	envPrefix   string
)

func build() (*modular.Manager, error) {
	return bootstrap.New("modular-demo", envPrefix, configPaths...).
		WithDatabase().
		WithModules(modular.Declare[auditModule]().Named("audit")).
		Build()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "modular-demo",
		Short:         "Build a module manager from configuration and exercise it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVarP(&configPaths, "config", "c",
		[]string{"cmd/config.yaml", "config.yaml", "config.local.toml"}, "configuration files, later files win")
	root.PersistentFlags().StringVar(&envPrefix, "env-prefix", "DEMO_", "prefix of environment overrides")

	root.AddCommand(&cobra.Command{
		Use:   "run [visitor...]",
		Short: "Create visitors and dispatch greetings to them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"alice", "bob", "carol"}
			}
			m, err := build()
			if err != nil {
				return err
			}
			defer bootstrap.Shutdown(m)

			n, err := runDemo(m, args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d greetings recorded\n", n)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "modules",
		Short: "List the modules in initialization order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := build()
			if err != nil {
				return err
			}
			defer bootstrap.Shutdown(m)

			for i, mod := range m.Modules() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, mod.Name())
			}
			return nil
		},
	})

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
