package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cpescan/cpescan/cpescan/db"
	"github.com/cpescan/cpescan/internal/log"
)

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "display database status",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runDbStatusCmd(cmd, args))
	},
}

func init() {
	dbCmd.AddCommand(dbStatusCmd)
}

func runDbStatusCmd(_ *cobra.Command, _ []string) int {
	dbCurator, err := db.NewCurator(appConfig.Db.ToCuratorConfig())
	if err != nil {
		log.Errorf("could not curate database: %+v", err)
		return 1
	}

	status := dbCurator.Status()

	fmt.Println("Location: ", status.Location)
	fmt.Printf("Built:     %s (%s)\n", status.Built.String(), humanize.Time(status.Built))
	fmt.Println("Schema:   ", status.SchemaVersion)
	fmt.Println("Checksum: ", status.Checksum)
	if status.Err != nil {
		fmt.Printf("Status:    INVALID [%+v]\n", status.Err)
		return 1
	}

	fmt.Println("Status:    Valid")
	return 0
}
