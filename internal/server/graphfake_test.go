package server

import (
	"context"
	"log/slog"

	"github.com/adstack/meta-ads-agent/internal/graph"
)

// graphCall records one transport invocation for order and shape assertions.
type graphCall struct {
	Method string
	Path   string
	Params graph.Params
}

// fakeGraph is a scripted graph.Caller. respond decides the outcome of each
// call; every call is recorded in order.
type fakeGraph struct {
	Calls   []graphCall
	respond func(method, path string, params graph.Params) (map[string]any, error)
}

func (f *fakeGraph) Get(_ context.Context, path string, params graph.Params) (map[string]any, error) {
	f.Calls = append(f.Calls, graphCall{Method: "GET", Path: path, Params: params})
	return f.respond("GET", path, params)
}

func (f *fakeGraph) Post(_ context.Context, path string, params graph.Params) (map[string]any, error) {
	f.Calls = append(f.Calls, graphCall{Method: "POST", Path: path, Params: params})
	return f.respond("POST", path, params)
}

func newTestServer(fake *fakeGraph) *Server {
	return &Server{
		Graph:     fake,
		AccountID: "1",
		Logger:    slog.New(slog.DiscardHandler),
	}
}

func int64ptr(v int64) *int64 { return &v }

func strptr(v string) *string { return &v }
