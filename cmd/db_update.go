package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cpescan/cpescan/cpescan/db"
	"github.com/cpescan/cpescan/internal/log"
)

var dbUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "download the latest vulnerability database",
	Run: func(cmd *cobra.Command, args []string) {
		ret := runDbUpdateCmd(cmd, args)
		if ret != 0 {
			fmt.Println("Unable to update vulnerability database")
		}
		os.Exit(ret)
	},
}

func init() {
	dbCmd.AddCommand(dbUpdateCmd)
}

func runDbUpdateCmd(_ *cobra.Command, _ []string) int {
	dbCurator, err := db.NewCurator(appConfig.Db.ToCuratorConfig())
	if err != nil {
		log.Errorf("could not curate database: %+v", err)
		return 1
	}

	updateAvailable, updateEntry, err := dbCurator.IsUpdateAvailable()
	if err != nil {
		log.Errorf("unable to check for vulnerability database update: %+v", err)
		return 1
	}

	if !updateAvailable {
		fmt.Println("No vulnerability database update available")
		return 0
	}

	if err := dbCurator.UpdateTo(updateEntry); err != nil {
		log.Errorf("unable to update vulnerability database: %+v", err)
		return 1
	}

	fmt.Println("Vulnerability database updated!")
	return 0
}
