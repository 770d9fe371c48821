package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/youfyi/kitctl/internal/core/domain"
	"github.com/youfyi/kitctl/internal/core/ports"
)

// QueryService runs retrieval queries and interprets their responses
type QueryService struct {
	gw      ports.Gateway
	session *Session
}

// NewQueryService creates a new query service
func NewQueryService(gw ports.Gateway, session *Session) *QueryService {
	return &QueryService{gw: gw, session: session}
}

// RunQueryRequest carries user input for an authenticated query
type RunQueryRequest struct {
	Query  string
	UseLLM bool
	Model  string
}

// Run queries the selected kit and interprets the response. The
// interpretation is stored on the session as the active query view.
func (s *QueryService) Run(ctx context.Context, req RunQueryRequest) (*domain.Interpretation, error) {
	kit, ok := s.session.SelectedKit()
	if !ok {
		return nil, ErrNoKit
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	resp, err := s.gw.Query(ctx, domain.QueryRequest{
		KitID:  kit.ID,
		Query:  req.Query,
		UseLLM: req.UseLLM,
		Model:  req.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	in := domain.Interpret(*resp)
	s.session.SetLastQuery(&in)
	return &in, nil
}

// RunQuick runs one of the service's preset queries against the selected
// kit. Presets bypass the language model.
func (s *QueryService) RunQuick(ctx context.Context, preset string) (*domain.Interpretation, error) {
	if !domain.IsQuickQuery(preset) {
		return nil, fmt.Errorf("unknown preset %q (one of: %s)", preset, strings.Join(domain.QuickQueries, ", "))
	}
	return s.Run(ctx, RunQueryRequest{Query: preset, UseLLM: false, Model: "none"})
}

// RunShared runs a token-scoped query; no kit selection or workspace is
// needed, only the opaque token
func (s *QueryService) RunShared(ctx context.Context, token string, req RunQueryRequest) (*domain.Interpretation, error) {
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	resp, err := s.gw.QueryShared(ctx, token, domain.QueryRequest{
		Query:  req.Query,
		UseLLM: req.UseLLM,
		Model:  req.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	in := domain.Interpret(*resp)
	s.session.SetLastQuery(&in)
	return &in, nil
}
