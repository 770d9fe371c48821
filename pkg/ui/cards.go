package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/services"
)

// RenderAssetTable renders asset rows as a table, with a checkbox column
// reflecting the selection state
func RenderAssetTable(rows []services.AssetRow) string {
	if len(rows) == 0 {
		return FormatMuted("No assets in this workspace.")
	}

	table := NewTable([]TableColumn{
		{Header: "", Width: 3},
		{Header: "NAME", Width: 24},
		{Header: "TYPE", Width: 10},
		{Header: "SIZE", Width: 8, Align: "right"},
		{Header: "ID", Width: 12},
	})

	for _, r := range rows {
		check := "[ ]"
		if r.Checked {
			check = "[x]"
		}
		table.AddRow([]string{
			check,
			r.Icon + " " + r.Name,
			r.Kind,
			r.Size,
			shortID(r.ID),
		})
	}
	return table.Render()
}

// RenderKitTable renders kit rows as a table, marking the selected kit
func RenderKitTable(rows []services.KitRow) string {
	if len(rows) == 0 {
		return FormatMuted("No kits in this workspace.")
	}

	table := NewTable([]TableColumn{
		{Header: "", Width: 2},
		{Header: "NAME", Width: 20},
		{Header: "ASSETS", Width: 6, Align: "right"},
		{Header: "DESCRIPTION", Width: 24},
		{Header: "ID", Width: 12},
	})

	for _, r := range rows {
		marker := " "
		if r.Selected {
			marker = "*"
		}
		table.AddRow([]string{
			marker,
			IconKit + " " + r.Name,
			fmt.Sprintf("%d", r.AssetCount),
			truncate(r.Description, 24),
			shortID(r.ID),
		})
	}
	return table.Render()
}

// RenderInterpretation renders a query interpretation. Result sets become a
// card grid; text answers print verbatim with sources underneath.
func RenderInterpretation(in *domain.Interpretation) string {
	var builder strings.Builder

	switch in.Kind {
	case domain.KindResultSet:
		builder.WriteString(renderResultCards(in.Items))
	default:
		builder.WriteString(in.Text)
		builder.WriteString("\n")
	}

	if len(in.Sources) > 0 {
		builder.WriteString("\n")
		builder.WriteString(FormatMuted("Sources: " + strings.Join(in.Sources, ", ")))
		builder.WriteString("\n")
	}
	if in.Model != "" && in.Model != "none" {
		builder.WriteString(FormatMuted("Model: " + in.Model))
		builder.WriteString("\n")
	}

	return builder.String()
}

// renderResultCards lays out asset summaries as bordered cards, two per
// row. Summaries may be partial; absent fields are simply skipped.
func renderResultCards(items []domain.AssetSummary) string {
	if len(items) == 0 {
		return FormatMuted("No matching assets.") + "\n"
	}

	cards := make([]string, 0, len(items))
	for _, item := range items {
		cards = append(cards, renderCard(item))
	}

	var builder strings.Builder
	for i := 0; i < len(cards); i += 2 {
		if i+1 < len(cards) {
			builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards[i], " ", cards[i+1]))
		} else {
			builder.WriteString(cards[i])
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func renderCard(item domain.AssetSummary) string {
	var lines []string

	name := item.Name
	if name == "" {
		name = "(unnamed)"
	}
	title := name
	if item.MimeType != "" {
		title = domain.FileIcon(item.MimeType) + " " + name
	}
	lines = append(lines, StyleBold.Render(truncate(title, 30)))

	var meta []string
	if item.AssetType != "" {
		meta = append(meta, item.AssetType)
	}
	if item.FileSize > 0 {
		meta = append(meta, domain.FormatSize(item.FileSize))
	}
	if len(meta) > 0 {
		lines = append(lines, FormatMuted(strings.Join(meta, " · ")))
	}

	if item.Description != "" {
		lines = append(lines, truncate(item.Description, 30))
	}
	if item.CreatedAt != "" {
		lines = append(lines, FormatMuted(truncate(item.CreatedAt, 30)))
	}

	return StyleCard.Width(32).Render(strings.Join(lines, "\n"))
}

// RenderSimpleList renders a bullet list
func RenderSimpleList(items []string) string {
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString("  • ")
		builder.WriteString(item)
		builder.WriteString("\n")
	}
	return builder.String()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
