package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/pkg/ui"
)

var exportOutputPath string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active workspace as a bundle file",
	Long: `Export the active workspace, its assets and its kits to a portable
JSON bundle. Kit membership travels by asset name.

Example:
  kitctl export --out research.bundle.json`,
	RunE: runExport,
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Re-create a workspace from a bundle file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputPath, "out", "o", "", "Output file (defaults to <workspace>.bundle.json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	bundle, err := exportService.Export(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to export workspace"))
		return err
	}

	out := exportOutputPath
	if out == "" {
		out = bundle.Workspace.Name + ".bundle.json"
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		fmt.Println(ui.FormatError("Failed to write bundle"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Exported workspace to " + out))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d assets, %d kits", len(bundle.Assets), len(bundle.Kits))))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println(ui.FormatError("Failed to read bundle"))
		return err
	}

	var bundle domain.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		fmt.Println(ui.FormatError("Bundle file is not valid JSON"))
		return err
	}

	result, err := exportService.Import(ctx, &bundle)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to import bundle"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Imported workspace: " + bundle.Workspace.Name))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d assets, %d kits", result.Assets, result.Kits)))
	fmt.Println(ui.FormatInfo("Workspace is now active (" + result.WorkspaceID + ")"))

	if len(result.Unresolved) > 0 {
		fmt.Println()
		fmt.Println(ui.FormatWarning("Some kit members could not be resolved:"))
		fmt.Print(ui.RenderSimpleList(result.Unresolved))
	}
	return nil
}
