package services

import (
	"context"
	"testing"

	"github.com/youfyi/kitctl/internal/core/domain"
)

func TestQueryService_Run(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		wantKind domain.InterpretationKind
	}{
		{
			name:     "structured answer renders as result set",
			answer:   `[{"name":"a.txt"},{"name":"b.pdf"}]`,
			wantKind: domain.KindResultSet,
		},
		{
			name:     "prose answer renders as text",
			answer:   "Two files mention the quarterly targets.",
			wantKind: domain.KindTextAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			ctx := context.Background()
			setupWorkspace(t, env)
			setupKit(t, env, "Kit A")
			env.gw.QueryAnswer = tt.answer
			env.gw.QuerySources = []string{"a.txt"}

			in, err := env.queries.Run(ctx, RunQueryRequest{Query: "what's in here?", UseLLM: true, Model: "gemini-pro"})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if in.Kind != tt.wantKind {
				t.Errorf("Expected kind %v, got %v", tt.wantKind, in.Kind)
			}

			last, ok := env.session.LastQuery()
			if !ok || last.Kind != tt.wantKind {
				t.Error("The interpretation must be stored as the active query view")
			}
		})
	}
}

func TestQueryService_RunValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)

	// No kit selected
	if _, err := env.queries.Run(ctx, RunQueryRequest{Query: "q"}); err != ErrNoKit {
		t.Errorf("Expected ErrNoKit, got %v", err)
	}

	// Empty query
	setupKit(t, env, "Kit A")
	if _, err := env.queries.Run(ctx, RunQueryRequest{Query: "   "}); err == nil {
		t.Error("Blank query must be rejected before any network call")
	}
}

func TestQueryService_RunQuick(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	setupKit(t, env, "Kit A")
	env.gw.QueryAnswer = `[{"name":"a.txt"}]`

	in, err := env.queries.RunQuick(ctx, "Largest Files")
	if err != nil {
		t.Fatalf("RunQuick failed: %v", err)
	}
	if in.Kind != domain.KindResultSet {
		t.Errorf("Expected result set from a structured preset, got %v", in.Kind)
	}
	if in.Model != "none" {
		t.Errorf("Presets bypass the model, got %q", in.Model)
	}

	if _, err := env.queries.RunQuick(ctx, "Not A Preset"); err == nil {
		t.Error("Unknown presets must be rejected")
	}
}

func TestQueryService_RunShared(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	setupKit(t, env, "Kit A")
	link, err := env.shares.Create(ctx, 7)
	if err != nil {
		t.Fatalf("Share create failed: %v", err)
	}
	env.gw.QueryAnswer = "shared answer"

	// No kit selection or workspace needed, only the token
	env.session.Invalidate()

	in, err := env.queries.RunShared(ctx, link.Token, RunQueryRequest{Query: "q", UseLLM: true})
	if err != nil {
		t.Fatalf("RunShared failed: %v", err)
	}
	if in.Kind != domain.KindTextAnswer || in.Text != "shared answer" {
		t.Errorf("Unexpected interpretation: %+v", in)
	}

	if _, err := env.queries.RunShared(ctx, "", RunQueryRequest{Query: "q"}); err == nil {
		t.Error("Empty token must be rejected")
	}
	if _, err := env.queries.RunShared(ctx, link.Token, RunQueryRequest{Query: ""}); err == nil {
		t.Error("Empty query must be rejected")
	}
}
