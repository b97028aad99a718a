package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cpescan/cpescan/cpescan/presenter"
	"github.com/cpescan/cpescan/internal/config"
)

var cliOpts = config.CliOnlyOptions{}

func setCliOptions() {
	rootCmd.PersistentFlags().StringVarP(&cliOpts.ConfigPath, "config", "c", "", "application config file")

	flags := rootCmd.Flags()

	// output & formatting options
	flags.StringP(
		"output", "o", presenter.TablePresenter.String(),
		fmt.Sprintf("report output formatter, options=%v", presenter.Options),
	)

	flags.BoolP(
		"quiet", "q", false,
		"suppress all logging output",
	)

	flags.CountVarP(&cliOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")

	for _, flag := range []string{"output", "quiet"} {
		if err := bindConfigFlag(flags, flag); err != nil {
			fmt.Printf("unable to bind flag '%s': %+v", flag, err)
			os.Exit(1)
		}
	}
}

func bindConfigFlag(flags *pflag.FlagSet, flag string) error {
	return viper.BindPFlag(flag, flags.Lookup(flag))
}
