package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/pkg/config"
	"github.com/youfyi/kitctl/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the kitctl configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}

		// Seed the file with defaults so the editor opens something useful
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			fmt.Println(ui.FormatInfo("Created default config: " + path))
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}
