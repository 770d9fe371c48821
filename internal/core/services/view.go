package services

import "github.com/youfyi/kitctl/internal/core/domain"

// View synchronization: pure derivations from the session into render
// instructions. No I/O happens here; pkg/ui consumes these rows and the
// presentation layer draws them. Re-derive after every store refresh or
// query interpretation.

// AssetRow is the render instruction for one asset listing line
type AssetRow struct {
	ID      string
	Name    string
	Kind    string
	Icon    string
	Size    string
	Checked bool
}

// KitRow is the render instruction for one kit listing line
type KitRow struct {
	ID          string
	Name        string
	Description string
	AssetCount  int
	Selected    bool
}

// BuildAssetRows derives the asset listing rows, carrying the checkbox
// state from the selection set
func BuildAssetRows(s *Session) []AssetRow {
	assets := s.Assets()
	sel := s.Selection()

	rows := make([]AssetRow, 0, len(assets))
	for _, a := range assets {
		size := int64(-1)
		if a.FileSize > 0 {
			size = a.FileSize
		}
		rows = append(rows, AssetRow{
			ID:      a.ID,
			Name:    a.Name,
			Kind:    a.AssetType,
			Icon:    domain.FileIcon(a.MimeType),
			Size:    domain.FormatSize(size),
			Checked: sel.Has(a.ID),
		})
	}
	return rows
}

// BuildKitRows derives the kit listing rows, marking the selected kit
func BuildKitRows(s *Session) []KitRow {
	kits := s.Kits()
	selected, hasSelected := s.SelectedKit()

	rows := make([]KitRow, 0, len(kits))
	for _, k := range kits {
		rows = append(rows, KitRow{
			ID:          k.ID,
			Name:        k.Name,
			Description: k.Description,
			AssetCount:  len(k.Assets),
			Selected:    hasSelected && k.ID == selected.ID,
		})
	}
	return rows
}
