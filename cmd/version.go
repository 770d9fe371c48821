package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/pkg/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kitctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.StyleTitle.Render("kitctl") + " " + Version)
	},
}
