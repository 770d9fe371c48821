package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/core/services"
	"github.com/youfyi/kitctl/pkg/ui"
)

var (
	kitDescription string
	kitForce       bool
)

// kitCmd represents the kit command group
var kitCmd = &cobra.Command{
	Use:     "kit",
	Short:   "Manage kits in the active workspace",
	Aliases: []string{"k"},
	Long: `Create kits, select one, and add assets to it.

Examples:
  kitctl kit create "Q3 Reports"
  kitctl kit list
  kitctl kit use
  kitctl kit add report.pdf summary.md
  kitctl kit show
  kitctl kit delete <id>`,
}

var kitCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a kit and make it the selected one",
	Args:  cobra.ExactArgs(1),
	RunE:  runKitCreate,
}

var kitListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List kits in the active workspace",
	Aliases: []string{"ls"},
	RunE:    runKitList,
}

var kitUseCmd = &cobra.Command{
	Use:   "use [id]",
	Short: "Select the working kit (fuzzy picker without an id)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKitUse,
}

var kitAddCmd = &cobra.Command{
	Use:   "add <name|id>...",
	Short: "Add assets to the selected kit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKitAdd,
}

var kitShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a kit and its members (defaults to the selected one)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKitShow,
}

var kitDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a kit (its assets stay in the workspace)",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runKitDelete,
}

func init() {
	kitCreateCmd.Flags().StringVarP(&kitDescription, "description", "d", "", "Kit description")
	kitDeleteCmd.Flags().BoolVarP(&kitForce, "force", "f", false, "Skip the confirmation prompt")

	kitCmd.AddCommand(kitCreateCmd)
	kitCmd.AddCommand(kitListCmd)
	kitCmd.AddCommand(kitUseCmd)
	kitCmd.AddCommand(kitAddCmd)
	kitCmd.AddCommand(kitShowCmd)
	kitCmd.AddCommand(kitDeleteCmd)
}

func runKitCreate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	kit, err := kitService.Create(ctx, services.CreateKitRequest{
		Name:        args[0],
		Description: kitDescription,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create kit"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Created kit: " + kit.Name))
	fmt.Println(ui.FormatInfo("Kit is now selected (" + kit.ID + ")"))
	return nil
}

func runKitList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if _, err := kitService.List(ctx); err != nil {
		if err == services.ErrWorkspaceGone || err == services.ErrNoWorkspace {
			return err
		}
		fmt.Println(ui.FormatError("Failed to list kits"))
		return err
	}

	rows := services.BuildKitRows(appSession)
	fmt.Println(ui.FormatTitle("Kits"))
	fmt.Println()
	fmt.Print(ui.RenderKitTable(rows))
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d kits", len(rows))))
	return nil
}

func runKitUse(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	// The selection must come from a fresh listing
	if _, err := kitService.List(ctx); err != nil {
		return err
	}

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		picked, err := pickKitFromCache()
		if err != nil {
			return err
		}
		id = picked
	}

	if err := kitService.Select(id); err != nil {
		fmt.Println(ui.FormatError("Failed to select kit"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Selected kit: " + id))
	return nil
}

func runKitAdd(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if err := loadWorkspaceState(ctx); err != nil {
		return err
	}

	sel := appSession.Selection()
	for _, arg := range args {
		id, err := resolveAsset(arg)
		if err != nil {
			return err
		}
		sel.Toggle(id)
	}

	added, err := kitService.AddSelected(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to add assets to kit"))
		return err
	}

	if added == 0 {
		fmt.Println(ui.FormatInfo("All given assets were already in the kit"))
		return nil
	}
	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Added %d assets to the kit", added)))
	return nil
}

func runKitShow(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		if err := loadWorkspaceState(ctx); err != nil {
			return err
		}
		kit, ok := appSession.SelectedKit()
		if !ok {
			return services.ErrNoKit
		}
		id = kit.ID
	}

	kit, err := kitService.Get(ctx, id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to fetch kit"))
		return err
	}

	fmt.Println(ui.FormatTitle(ui.IconKit + " " + kit.Name))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", kit.ID))
	if kit.Description != "" {
		fmt.Println(ui.RenderKeyValue("Description", kit.Description))
	}
	fmt.Println(ui.RenderKeyValue("Assets", fmt.Sprintf("%d", len(kit.Assets))))
	fmt.Println()

	if len(kit.Assets) > 0 {
		names := make([]string, 0, len(kit.Assets))
		for _, a := range kit.Assets {
			names = append(names, a.Name)
		}
		fmt.Print(ui.RenderSimpleList(names))
	}
	return nil
}

func runKitDelete(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	id := args[0]

	if err := loadWorkspaceState(ctx); err != nil {
		return err
	}

	if !kitForce {
		if !confirm(fmt.Sprintf("Delete kit %s?", id)) {
			fmt.Println(ui.FormatInfo("Aborted"))
			return nil
		}
	}

	if err := kitService.Delete(ctx, id); err != nil {
		fmt.Println(ui.FormatError("Failed to delete kit"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Deleted kit: " + id))
	return nil
}

// pickKitFromCache runs the fuzzy picker over the already refreshed kit
// listing
func pickKitFromCache() (string, error) {
	kits := appSession.Kits()
	if len(kits) == 0 {
		return "", fmt.Errorf("no kits to choose from")
	}
	return pickKitSlice(kits)
}
