package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/services"
	"github.com/youfyi/kitctl/pkg/ui"
)

var (
	queryNoLLM  bool
	queryModel  string
	queryPreset string
	queryToken  string
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:     "query [text]",
	Short:   "Run a retrieval query against the selected kit",
	Aliases: []string{"q"},
	Long: `Run a retrieval query against the selected kit, or against a shared
kit via its token. Structured answers render as cards, free-form answers
print verbatim.

Examples:
  kitctl query "what do the reports say about Q3?"
  kitctl query --preset "Largest Files"
  kitctl query "summarize" --token <token>
  kitctl query "list everything" --no-llm`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryNoLLM, "no-llm", false, "Skip the language model and use plain retrieval")
	queryCmd.Flags().StringVarP(&queryModel, "model", "m", "", "Model to answer with (overrides config)")
	queryCmd.Flags().StringVarP(&queryPreset, "preset", "p", "", "Run a preset quick query instead of free text")
	queryCmd.Flags().StringVarP(&queryToken, "token", "t", "", "Query a shared kit by token instead of the selected kit")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if queryPreset != "" {
		if len(args) > 0 || queryToken != "" {
			return fmt.Errorf("--preset cannot be combined with free text or --token")
		}
		if err := loadWorkspaceState(ctx); err != nil {
			return err
		}
		in, err := queryService.RunQuick(ctx, queryPreset)
		if err != nil {
			fmt.Println(ui.FormatError("Query failed"))
			return err
		}
		printInterpretation(queryPreset, in)
		return nil
	}

	if len(args) == 0 {
		fmt.Println(ui.FormatInfo("Presets: " + strings.Join(domain.QuickQueries, ", ")))
		return fmt.Errorf("query text required (or use --preset)")
	}
	text := strings.Join(args, " ")

	req := services.RunQueryRequest{
		Query:  text,
		UseLLM: appConfig.UseLLM && !queryNoLLM,
		Model:  queryModel,
	}
	if req.Model == "" {
		req.Model = appConfig.DefaultModel
	}
	if !req.UseLLM {
		req.Model = "none"
	}

	var in *domain.Interpretation
	var err error
	if queryToken != "" {
		in, err = queryService.RunShared(ctx, queryToken, req)
	} else {
		if err := loadWorkspaceState(ctx); err != nil {
			return err
		}
		in, err = queryService.Run(ctx, req)
	}
	if err != nil {
		fmt.Println(ui.FormatError("Query failed"))
		return err
	}

	printInterpretation(text, in)
	return nil
}

func printInterpretation(query string, in *domain.Interpretation) {
	fmt.Println(ui.StyleHeader.Render(ui.IconQuery + " " + query))
	fmt.Println()
	fmt.Print(ui.RenderInterpretation(in))
}
