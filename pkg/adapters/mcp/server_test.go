package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/fsg"
	"github.com/aretw0/fsg/internal/cli"
	"github.com/aretw0/fsg/pkg/adapters/memory"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/dsl"
	"github.com/aretw0/fsg/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine, err := fsg.New("", fsg.WithLoader(memory.NewLoader(cli.DemoDefinition())))
	require.NoError(t, err)
	return NewServer(engine)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
}

func TestServer_RegistersTools(t *testing.T) {
	s := newTestServer(t)

	tools := s.MCPServer().ListTools()
	for _, name := range []string{"generate", "match", "check", "get_automaton", "get_graph"} {
		assert.Contains(t, tools, name)
	}
}

func TestHandleGenerate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	first, err := s.handleGenerate(ctx, mcp.CallToolRequest{}, map[string]any{"count": float64(20), "seed": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, "demo", first.Automaton)
	assert.Equal(t, uint64(7), first.Seed)
	require.Len(t, first.Samples, 20)

	again, err := s.handleGenerate(ctx, mcp.CallToolRequest{}, map[string]any{"count": float64(20), "seed": "7"})
	require.NoError(t, err)
	assert.Equal(t, first.Samples, again.Samples, "string seeds decode to the same value")

	for _, sample := range first.Samples {
		assert.True(t, s.current().Match(ctx, sample).Accepted, sample)
	}

	one, err := s.handleGenerate(ctx, mcp.CallToolRequest{}, map[string]any{})
	require.NoError(t, err)
	assert.Len(t, one.Samples, 1)

	_, err = s.handleGenerate(ctx, mcp.CallToolRequest{}, map[string]any{"count": float64(maxCount + 1)})
	assert.Error(t, err)
	_, err = s.handleGenerate(ctx, mcp.CallToolRequest{}, map[string]any{"amount": float64(1)})
	assert.ErrorContains(t, err, "invalid arguments")
}

func TestHandleGenerate_Divergence(t *testing.T) {
	engine, err := fsg.New("", fsg.WithLoader(memory.NewLoader(cli.DemoDefinition())), fsg.WithMaxSteps(1))
	require.NoError(t, err)
	s := NewServer(engine)

	_, err = s.handleGenerate(context.Background(), mcp.CallToolRequest{}, map[string]any{"count": float64(2)})
	assert.ErrorIs(t, err, domain.ErrGenerationDivergence)
}

func TestHandleMatch(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleMatch(context.Background(), mcp.CallToolRequest{}, map[string]any{
		"input":  "fgg",
		"inputs": []any{"ggg", "gffs"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.True(t, resp.Results[0].Accepted)
	assert.Equal(t, []string{"start", "qa", "qb", "qd"}, resp.Results[0].Path)
	assert.False(t, resp.Results[1].Accepted)
	assert.Empty(t, resp.Results[1].Path)
	assert.True(t, resp.Results[2].Accepted)

	_, err = s.handleMatch(context.Background(), mcp.CallToolRequest{}, map[string]any{})
	assert.Error(t, err)

	t.Setenv(runner.EnvMaxInputSize, "2")
	_, err = s.handleMatch(context.Background(), mcp.CallToolRequest{}, map[string]any{"input": "fgg"})
	assert.ErrorIs(t, err, runner.ErrInputTooLarge)
}

func TestHandleCheck(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleCheck(context.Background(), callRequest("check", map[string]any{
		"samples":   float64(200),
		"seed":      float64(3),
		"patterns":  []any{"^" + cli.DemoPattern + "$"},
		"reference": cli.DemoPattern,
		"inputs":    float64(200),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	report, ok := res.StructuredContent.(*domain.Report)
	require.True(t, ok)
	assert.True(t, report.SelfCheck.Passed())
	require.Len(t, report.Patterns, 1)
	assert.Equal(t, 200, report.Patterns[0].Passed)
	require.NotNil(t, report.Reference)
	assert.True(t, report.Reference.Equivalent())

	res, err = s.handleCheck(context.Background(), callRequest("check", map[string]any{"patterns": []any{"("}}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleCheck(context.Background(), callRequest("check", map[string]any{"bogus": true}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleGraph(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleGraph(context.Background(), callRequest("get_graph", map[string]any{"input": "s"}))
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "graph LR")
	assert.Contains(t, text.Text, "classDef visited")
}

func TestReadAutomaton_FollowsSetEngine(t *testing.T) {
	s := newTestServer(t)

	contents, err := s.readAutomaton(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, automatonURI, text.URI)

	var def domain.Definition
	require.NoError(t, json.Unmarshal([]byte(text.Text), &def))
	assert.Equal(t, "demo", def.Name)

	b := dsl.New("swapped")
	b.Add("start").Start().Go("end")
	b.Add("end").End()
	engine, err := fsg.New("", fsg.WithLoader(memory.NewLoader(b.Definition())))
	require.NoError(t, err)
	s.SetEngine(engine)

	contents, err = s.readAutomaton(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(contents[0].(mcp.TextResourceContents).Text), &def))
	assert.Equal(t, "swapped", def.Name)
}
