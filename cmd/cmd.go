package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"

	"github.com/cpescan/cpescan/cpescan"
)

var eventBus *partybus.Bus

func init() {
	setCliOptions()

	cobra.OnInitialize(
		initAppConfig,
		initLogging,
		logAppConfig,
		initEventBus,
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initEventBus() {
	eventBus = partybus.NewBus()
	cpescan.SetBus(eventBus)
}
