package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"

	"github.com/cpescan/cpescan/cpescan"
	"github.com/cpescan/cpescan/cpescan/event"
	"github.com/cpescan/cpescan/cpescan/presenter"
	"github.com/cpescan/cpescan/internal"
	"github.com/cpescan/cpescan/internal/bus"
	"github.com/cpescan/cpescan/internal/log"
	"github.com/cpescan/cpescan/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   fmt.Sprintf("%s [CPE]", internal.ApplicationName),
	Short: "A vulnerability matcher for software identifiers",
	Long: fmt.Sprintf(`Match a CPE URI against the known vulnerability database:
    %s 'cpe:/a:apache:struts:2.1.2'         match a specific version
    %s 'cpe:/a:apache:struts'               match entries that affect all versions
`, internal.ApplicationName, internal.ApplicationName),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runDefaultCmd(cmd, args))
	},
}

func runDefaultCmd(_ *cobra.Command, args []string) int {
	userCpeStr := args[0]

	if appConfig.Dev.ProfileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	if appConfig.CheckForAppUpdate {
		checkForAppUpdate()
	}

	provider, err := cpescan.LoadVulnerabilityDB(appConfig.Db.ToCuratorConfig(), appConfig.Db.AutoUpdate)
	if err != nil {
		log.Errorf("failed to load vulnerability db: %+v", err)
		return 1
	}

	matches, err := cpescan.FindVulnerabilities(provider, userCpeStr)
	if err != nil {
		log.Errorf("failed to find vulnerabilities: %+v", err)
		return 1
	}

	err = presenter.GetPresenter(appConfig.PresenterOpt).Present(os.Stdout, matches)
	if err != nil {
		log.Errorf("could not format results: %+v", err)
		return 1
	}

	return 0
}

// checkForAppUpdate is advisory only: failures are logged and never block the
// scan.
func checkForAppUpdate() {
	isAvailable, newVersion, err := version.IsUpdateAvailable()
	if err != nil {
		log.Errorf("unable to check for application update: %+v", err)
		return
	}
	if isAvailable {
		log.Infof("new version of %s is available: %s (currently running: %s)", internal.ApplicationName, newVersion, version.FromBuild().Version)

		bus.Publish(partybus.Event{
			Type:  event.AppUpdateAvailable,
			Value: newVersion,
		})
	} else {
		log.Debugf("no new %s update available", internal.ApplicationName)
	}
}
