// Package server assembles the MCP server: the tool set, the static
// resource, the analysis prompt, and the transport it is served over.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/iamfaham/investor-data-mcp/internal/config"
	"github.com/iamfaham/investor-data-mcp/internal/tools"
	"github.com/iamfaham/investor-data-mcp/internal/tools/investortool"
)

// serverName is the MCP implementation name announced during initialize.
const serverName = "VC Data Server"

// shutdownGrace is how long an HTTP transport gets to drain connections
// after the run context is cancelled.
const shutdownGrace = 10 * time.Second

// Server wraps an assembled MCP server together with the transport settings
// it will run under.
type Server struct {
	mcp *mcp.Server
	cfg config.ServerConfig
	log *slog.Logger
}

// New assembles the MCP server around svc: all investor tools, the
// docs://vc_data_guide resource, and the analyze_investor_data prompt.
func New(svc *investortool.Service, version string, cfg config.ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	tools.RegisterAll(s, investortool.Tools(svc))
	s.AddResource(investortool.DataGuideResource())
	s.AddPrompt(investortool.AnalyzePrompt())

	return &Server{mcp: s, cfg: cfg, log: log}
}

// MCP exposes the underlying SDK server, mainly for tests.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves MCP over the configured transport until ctx is cancelled. For
// stdio it blocks on the client session; for streamable-http it blocks on the
// HTTP listener and drains it when ctx ends.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case config.TransportStreamableHTTP:
		return s.runHTTP(ctx)
	case config.TransportStdio, "":
		s.log.InfoContext(ctx, "serving MCP over stdio")
		if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			return fmt.Errorf("server: stdio session: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("server: unknown transport %q", s.cfg.Transport)
	}
}

// runHTTP serves the streamable-http transport at /mcp on the configured
// listen address. Sessions are stateless: every request may come from a
// fresh client, so each is routed to the same server instance.
func (s *Server) runHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{Stateless: true})

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)

	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: mux,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errc := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "serving MCP over streamable-http",
			"addr", s.cfg.ListenAddr, "endpoint", "/mcp")
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen on %s: %w", s.cfg.ListenAddr, err)
		}
		return nil
	}
}
