package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wardenbot/warden/internal/icons"
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "List the symbolic icon table",
	Run: func(c *cobra.Command, args []string) {
		table := icons.All()
		for _, name := range icons.Names() {
			fmt.Printf("%-15s %s\n", name, table[name])
		}
	},
}

func init() {
	rootCmd.AddCommand(iconsCmd)
}
