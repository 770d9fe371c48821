package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/core/services"
	"github.com/youfyi/kitctl/pkg/ui"
)

var (
	workspaceDescription string
	workspaceForce       bool
)

// workspaceCmd represents the workspace command group
var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Short:   "Manage workspaces",
	Aliases: []string{"ws"},
	Long: `Create, list, select and delete workspaces.

Examples:
  kitctl workspace create "Research"
  kitctl workspace list
  kitctl workspace use
  kitctl workspace delete <id>`,
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a workspace and make it active",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceCreate,
}

var workspaceListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all workspaces",
	Aliases: []string{"ls"},
	RunE:    runWorkspaceList,
}

var workspaceUseCmd = &cobra.Command{
	Use:   "use [id]",
	Short: "Select the active workspace (fuzzy picker without an id)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWorkspaceUse,
}

var workspaceShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show workspace details (defaults to the active one)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWorkspaceShow,
}

var workspaceDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a workspace and everything in it",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runWorkspaceDelete,
}

func init() {
	workspaceCreateCmd.Flags().StringVarP(&workspaceDescription, "description", "d", "", "Workspace description")
	workspaceDeleteCmd.Flags().BoolVarP(&workspaceForce, "force", "f", false, "Skip the confirmation prompt")

	workspaceCmd.AddCommand(workspaceCreateCmd)
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceUseCmd)
	workspaceCmd.AddCommand(workspaceShowCmd)
	workspaceCmd.AddCommand(workspaceDeleteCmd)
}

func runWorkspaceCreate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	ws, err := workspaceService.Create(ctx, services.CreateWorkspaceRequest{
		Name:        args[0],
		Description: workspaceDescription,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create workspace"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Created workspace: " + ws.Name))
	fmt.Println(ui.FormatInfo("Workspace is now active (" + ws.ID + ")"))
	return nil
}

func runWorkspaceList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	workspaces, err := workspaceService.List(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list workspaces"))
		return err
	}

	if len(workspaces) == 0 {
		fmt.Println(ui.FormatWarning("No workspaces found"))
		fmt.Println(ui.FormatInfo("Create one with: kitctl workspace create \"My Workspace\""))
		return nil
	}

	fmt.Println(ui.FormatTitle("Workspaces"))
	fmt.Println()

	active, _ := appSession.ActiveWorkspace()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "", Width: 2},
		{Header: "Name", Width: 24, Align: "left"},
		{Header: "Description", Width: 30, Align: "left"},
		{Header: "ID", Width: 12, Align: "left"},
	})

	for _, ws := range workspaces {
		marker := " "
		if ws.ID == active {
			marker = "*"
		}
		table.AddRow([]string{
			marker,
			truncate(ws.Name, 24),
			truncate(ws.Description, 30),
			shortID(ws.ID),
		})
	}

	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d workspaces", len(workspaces))))
	return nil
}

func runWorkspaceUse(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		picked, err := pickWorkspace(ctx)
		if err != nil {
			return err
		}
		id = picked
	}

	if err := workspaceService.Select(ctx, id); err != nil {
		if err == services.ErrWorkspaceGone {
			return err
		}
		fmt.Println(ui.FormatError("Failed to select workspace"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Active workspace: " + id))
	return nil
}

func runWorkspaceShow(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		active, ok := appSession.ActiveWorkspace()
		if !ok {
			return services.ErrNoWorkspace
		}
		id = active
	}

	ws, err := workspaceService.Get(ctx, id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to fetch workspace"))
		return err
	}

	fmt.Println(ui.FormatTitle(ws.Name))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", ws.ID))
	if ws.Description != "" {
		fmt.Println(ui.RenderKeyValue("Description", ws.Description))
	}
	fmt.Println(ui.RenderKeyValue("Created", ws.CreatedAt.Format("2006-01-02 15:04")))
	return nil
}

func runWorkspaceDelete(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	id := args[0]

	if !workspaceForce {
		if !confirm(fmt.Sprintf("Delete workspace %s and all its assets, kits and links?", id)) {
			fmt.Println(ui.FormatInfo("Aborted"))
			return nil
		}
	}

	if err := workspaceService.Delete(ctx, id); err != nil {
		fmt.Println(ui.FormatError("Failed to delete workspace"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Deleted workspace: " + id))
	if _, ok := appSession.ActiveWorkspace(); !ok {
		fmt.Println(ui.FormatInfo("No workspace is active now"))
	}
	return nil
}
