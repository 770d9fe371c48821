package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/core/services"
	"github.com/youfyi/kitctl/pkg/ui"
)

var (
	assetName        string
	assetDescription string
	assetContentFile string
	assetOutputPath  string
	assetForce       bool
)

// assetCmd represents the asset command group
var assetCmd = &cobra.Command{
	Use:     "asset",
	Short:   "Manage assets in the active workspace",
	Aliases: []string{"a"},
	Long: `Add, upload, list, download and delete assets.

Examples:
  kitctl asset add "Meeting Notes" --content-file notes.md
  kitctl asset upload ./report.pdf
  kitctl asset list
  kitctl asset download report.pdf --out ./downloads/
  kitctl asset delete report.pdf
  kitctl asset watch ./inbox`,
}

var assetAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a text asset from stdin or a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetAdd,
}

var assetUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file as an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetUpload,
}

var assetListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List assets in the active workspace",
	Aliases: []string{"ls"},
	RunE:    runAssetList,
}

var assetDownloadCmd = &cobra.Command{
	Use:   "download <name|id>",
	Short: "Download an asset's content",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetDownload,
}

var assetDeleteCmd = &cobra.Command{
	Use:     "delete <name|id>",
	Short:   "Delete an asset",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runAssetDelete,
}

func init() {
	assetAddCmd.Flags().StringVarP(&assetDescription, "description", "d", "", "Asset description")
	assetAddCmd.Flags().StringVar(&assetContentFile, "content-file", "", "Read content from this file instead of stdin")

	assetUploadCmd.Flags().StringVarP(&assetName, "name", "n", "", "Asset name (defaults to the filename)")
	assetUploadCmd.Flags().StringVarP(&assetDescription, "description", "d", "", "Asset description")

	assetDownloadCmd.Flags().StringVarP(&assetOutputPath, "out", "o", "", "Output file or directory")

	assetDeleteCmd.Flags().BoolVarP(&assetForce, "force", "f", false, "Skip the confirmation prompt")

	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetUploadCmd)
	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetDownloadCmd)
	assetCmd.AddCommand(assetDeleteCmd)
	assetCmd.AddCommand(assetWatchCmd)
}

func runAssetAdd(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	var content []byte
	var err error
	if assetContentFile != "" {
		content, err = os.ReadFile(assetContentFile)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to read content file"))
			return err
		}
	} else {
		content, err = readAllStdin()
		if err != nil {
			fmt.Println(ui.FormatError("Failed to read stdin"))
			return err
		}
	}

	asset, err := assetService.Create(ctx, services.CreateAssetRequest{
		Name:        args[0],
		Description: assetDescription,
		Content:     string(content),
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to add asset"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Added asset: " + asset.Name))
	return nil
}

func runAssetUpload(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to open file"))
		return err
	}
	defer f.Close()

	asset, err := assetService.Upload(ctx, services.UploadAssetRequest{
		Name:        assetName,
		Description: assetDescription,
		Filename:    filepath.Base(path),
		Reader:      f,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to upload asset"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Uploaded asset: " + asset.Name))
	return nil
}

func runAssetList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if _, err := assetService.List(ctx); err != nil {
		if err == services.ErrWorkspaceGone || err == services.ErrNoWorkspace {
			return err
		}
		fmt.Println(ui.FormatError("Failed to list assets"))
		return err
	}

	rows := services.BuildAssetRows(appSession)
	fmt.Println(ui.FormatTitle("Assets"))
	fmt.Println()
	fmt.Print(ui.RenderAssetTable(rows))
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d assets", len(rows))))
	return nil
}

func runAssetDownload(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if err := loadWorkspaceState(ctx); err != nil {
		return err
	}

	id, err := resolveAsset(args[0])
	if err != nil {
		return err
	}

	data, err := assetService.Download(ctx, id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to download asset"))
		return err
	}

	out := downloadTarget(args[0])
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		fmt.Println(ui.FormatError("Failed to write file"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Downloaded to " + out))
	return nil
}

func runAssetDelete(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if err := loadWorkspaceState(ctx); err != nil {
		return err
	}

	id, err := resolveAsset(args[0])
	if err != nil {
		return err
	}

	if !assetForce {
		if !confirm(fmt.Sprintf("Delete asset %q?", args[0])) {
			fmt.Println(ui.FormatInfo("Aborted"))
			return nil
		}
	}

	if err := assetService.Delete(ctx, id); err != nil {
		fmt.Println(ui.FormatError("Failed to delete asset"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Deleted asset: " + args[0]))
	return nil
}

// downloadTarget resolves where a download lands: --out wins, then the
// configured download directory, then the current directory
func downloadTarget(name string) string {
	base := filepath.Base(name)

	if assetOutputPath != "" {
		if info, err := os.Stat(assetOutputPath); err == nil && info.IsDir() {
			return filepath.Join(assetOutputPath, base)
		}
		return assetOutputPath
	}
	if appConfig.DownloadDir != "" {
		return filepath.Join(appConfig.DownloadDir, base)
	}
	return base
}

func readAllStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil, fmt.Errorf("no content given (pipe content in or use --content-file)")
	}
	return io.ReadAll(os.Stdin)
}
