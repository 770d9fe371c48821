package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/services"
)

// pickWorkspace presents a fuzzy picker over the workspace listing and
// returns the chosen id
func pickWorkspace(ctx context.Context) (string, error) {
	workspaces, err := workspaceService.List(ctx)
	if err != nil {
		return "", err
	}
	if len(workspaces) == 0 {
		return "", fmt.Errorf("no workspaces to choose from")
	}

	idx, err := fuzzyfinder.Find(
		workspaces,
		func(i int) string {
			return workspaces[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			ws := workspaces[i]
			return fmt.Sprintf("%s\n\n%s\n\nID: %s", ws.Name, ws.Description, ws.ID)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return workspaces[idx].ID, nil
}

// pickKitSlice presents a fuzzy picker over the given kits and returns
// the chosen id
func pickKitSlice(kits []domain.Kit) (string, error) {
	idx, err := fuzzyfinder.Find(
		kits,
		func(i int) string {
			return kits[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			k := kits[i]
			return fmt.Sprintf("%s\n\n%s\n\nAssets: %d", k.Name, k.Description, len(k.Assets))
		}),
	)
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return kits[idx].ID, nil
}

// resolveAsset maps a name-or-id argument to an asset id using the cached
// asset listing. Names are tried first so short ids never shadow a name.
func resolveAsset(arg string) (string, error) {
	if asset, ok := assetService.FindByName(arg); ok {
		return asset.ID, nil
	}
	for _, a := range appSession.Assets() {
		if a.ID == arg {
			return a.ID, nil
		}
	}
	return "", fmt.Errorf("no asset named or identified by %q in the active workspace", arg)
}

// confirm asks a yes/no question on stdin, defaulting to no
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// requireWorkspace fails early when no workspace is active
func requireWorkspace() error {
	if _, ok := appSession.ActiveWorkspace(); !ok {
		return services.ErrNoWorkspace
	}
	return nil
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatAssetSize renders a byte count, with "-" when the size is unknown
func formatAssetSize(n int64) string {
	if n <= 0 {
		return "-"
	}
	return domain.FormatSize(n)
}

// shortID abbreviates a uuid-style id for table display
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
