package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/adapters/api"
	"github.com/youfyi/kitctl/internal/adapters/state"
	"github.com/youfyi/kitctl/internal/core/services"
	"github.com/youfyi/kitctl/pkg/config"
	"github.com/youfyi/kitctl/pkg/ui"
)

var (
	// Global configuration
	appConfig *config.Config

	// Session and gateway
	appSession *services.Session
	apiClient  *api.Client

	// Services
	workspaceService *services.WorkspaceService
	assetService     *services.AssetService
	kitService       *services.KitService
	shareService     *services.ShareService
	queryService     *services.QueryService
	exportService    *services.ExportService
	refresher        *services.Refresher

	// Flags
	flagServerURL string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kitctl",
	Short: "kitctl - a workspace and kit manager for your asset service",
	Long: ui.StyleTitle.Render("kitctl") + " - Workspace & Kit Manager\n\n" +
		"A CLI for managing workspaces, assets and kits on a remote asset\n" +
		"service, with sharing links and retrieval queries built in.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(kitCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "service address (overrides config)")
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	appConfig, err = config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if flagServerURL != "" {
		appConfig.ServerURL = flagServerURL
	}

	ui.SetTheme(appConfig.ColorTheme)
	ui.SetTableWidth(appConfig.TableWidth)

	// Initialize gateway and session
	apiClient = api.NewClient(appConfig.ServerURL)
	appSession = services.NewSession(state.NewFileStore())
	refresher = services.NewRefresher(apiClient, appSession)

	// Initialize services
	workspaceService = services.NewWorkspaceService(apiClient, appSession, refresher)
	assetService = services.NewAssetService(apiClient, appSession, refresher)
	kitService = services.NewKitService(apiClient, appSession, refresher)
	shareService = services.NewShareService(apiClient, appSession)
	queryService = services.NewQueryService(apiClient, appSession)
	exportService = services.NewExportService(apiClient, appSession, refresher)

	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}

// loadWorkspaceState refreshes the dependent stores for the active
// workspace before a command that reads cached listings. A vanished
// workspace is reported once and the session comes back clean.
func loadWorkspaceState(ctx context.Context) error {
	err := refresher.RefreshAll(ctx)
	if err == services.ErrWorkspaceGone {
		fmt.Println(ui.FormatWarning(err.Error()))
		return err
	}
	return err
}
