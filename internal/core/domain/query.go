package domain

import (
	"bytes"
	"encoding/json"
)

// QueryRequest is the body of a retrieval query against a kit's assets
type QueryRequest struct {
	KitID  string `json:"kit_id,omitempty"`
	Query  string `json:"query"`
	UseLLM bool   `json:"use_llm"`
	Model  string `json:"model,omitempty"`
}

// QueryResponse is the raw service reply. The answer field is overloaded:
// it carries either free-form text or a JSON-encoded list of asset
// summaries, with no type tag to tell the two apart.
type QueryResponse struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
	Model   string   `json:"model"`
}

// AssetSummary is one element of a structured result set. Elements are not
// required to carry the full asset schema; absent fields stay zero and the
// renderer tolerates them.
type AssetSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AssetType   string `json:"asset_type"`
	MimeType    string `json:"mime_type"`
	FileSize    int64  `json:"file_size"`
	CreatedAt   string `json:"created_at"`
}

// InterpretationKind discriminates the two payload shapes an answer can take
type InterpretationKind int

const (
	// KindResultSet means the answer parsed as a JSON sequence of
	// asset-like summaries and should render as cards.
	KindResultSet InterpretationKind = iota

	// KindTextAnswer means the answer is free-form text and renders
	// verbatim.
	KindTextAnswer
)

// Interpretation is the normalized render instruction derived from a
// QueryResponse. Exactly one of Items or Text is meaningful, selected by
// Kind, so downstream rendering is exhaustive over the two variants.
type Interpretation struct {
	Kind    InterpretationKind
	Items   []AssetSummary
	Text    string
	Sources []string
	Model   string
}

// Interpret classifies a query response by structural inspection alone.
//
// The answer is first decoded as JSON. Any sequence becomes a result set;
// a decode failure or any non-sequence value (a string, a number, null, an
// object) falls back to the verbatim text of the answer. Interpret never
// fails: ambiguity always resolves to the text variant.
func Interpret(resp QueryResponse) Interpretation {
	out := Interpretation{
		Kind:    KindTextAnswer,
		Text:    resp.Answer,
		Sources: resp.Sources,
		Model:   resp.Model,
	}

	raw := []byte(resp.Answer)
	if !looksLikeArray(raw) {
		return out
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return out
	}

	// Elements that are not objects (scalars, nested arrays) still count
	// toward the sequence; they just render as empty cards.
	items := make([]AssetSummary, len(elems))
	for i, e := range elems {
		_ = json.Unmarshal(e, &items[i])
	}

	out.Kind = KindResultSet
	out.Items = items
	out.Text = ""
	return out
}

// looksLikeArray reports whether the first JSON token is '['. This keeps
// values like "null" or "3" (valid JSON, not sequences) on the text path
// without a second decode pass.
func looksLikeArray(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Quick query presets understood by the service without an LLM.
// Structured presets come back as JSON card lists, the rest as text.
var QuickQueries = []string{
	"Count Assets",
	"File Types",
	"Recent Files",
	"Basic Summary",
	"Largest Files",
	"List PDFs",
	"List Images",
}

// IsQuickQuery reports whether q is one of the service's preset queries
func IsQuickQuery(q string) bool {
	for _, p := range QuickQueries {
		if p == q {
			return true
		}
	}
	return false
}
