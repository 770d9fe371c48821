package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/services"
	"github.com/youfyi/kitctl/pkg/ui"
)

var statsChartPath string

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for the active workspace",
	Long: `Analyze the active workspace and display statistics.

Includes:
  - Asset and kit counts
  - Total storage size
  - Asset type distribution

With --chart, an interactive HTML bar chart of the type distribution is
written to disk.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsChartPath, "chart", "", "Write an HTML chart to this file")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if err := loadWorkspaceState(ctx); err != nil {
		if err == services.ErrWorkspaceGone || err == services.ErrNoWorkspace {
			return err
		}
		fmt.Println(ui.FormatError("Failed to load workspace state"))
		return err
	}

	assets := appSession.Assets()
	kits := appSession.Kits()

	var totalSize int64
	typeCounts := make(map[string]int)
	for _, a := range assets {
		typeCounts[a.AssetType]++
		if a.FileSize > 0 {
			totalSize += a.FileSize
		}
	}

	fmt.Println(ui.FormatTitle("Workspace Statistics"))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Assets:"), len(assets))
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Kits:"), len(kits))
	fmt.Fprintf(w, "%s\t%s\n", ui.StyleBold.Render("Total Size:"), formatAssetSize(totalSize))
	w.Flush()
	fmt.Println()

	renderTypeBars(typeCounts)

	if statsChartPath != "" {
		if err := writeStatsChart(statsChartPath, typeCounts); err != nil {
			fmt.Println(ui.FormatError("Failed to write chart"))
			return err
		}
		fmt.Println(ui.FormatSuccess("Chart written to " + statsChartPath))
	}
	return nil
}

// renderTypeBars displays a horizontal bar chart of asset types
func renderTypeBars(counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	fmt.Println(ui.StyleHeader.Render("Asset Types"))

	types := sortedTypes(counts)
	maxCount := counts[types[0]]
	barWidth := 20

	for _, t := range types {
		count := counts[t]
		length := count * barWidth / maxCount
		if length == 0 {
			length = 1
		}
		bar := strings.Repeat("█", length)

		fmt.Printf("%s %-12s %s\n",
			ui.StyleAccent.Render(bar),
			t,
			ui.StyleMuted.Render(fmt.Sprintf("%d", count)),
		)
	}
}

// writeStatsChart renders the type distribution as an HTML bar chart
func writeStatsChart(path string, counts map[string]int) error {
	types := sortedTypes(counts)

	values := make([]opts.BarData, 0, len(types))
	for _, t := range types {
		values = append(values, opts.BarData{Value: counts[t]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Asset Types",
			Subtitle: "Distribution in the active workspace",
		}),
	)
	bar.SetXAxis(types).AddSeries("Assets", values)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return bar.Render(f)
}

// sortedTypes orders asset types by count, descending, with document
// first on ties for stable output
func sortedTypes(counts map[string]int) []string {
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		if types[i] == domain.AssetTypeDocument {
			return true
		}
		if types[j] == domain.AssetTypeDocument {
			return false
		}
		return types[i] < types[j]
	})
	return types
}
