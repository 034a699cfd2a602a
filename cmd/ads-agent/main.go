package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/adstack/meta-ads-agent/internal/auth"
	"github.com/adstack/meta-ads-agent/internal/config"
	httpHandlers "github.com/adstack/meta-ads-agent/internal/http"
	mcpHandlers "github.com/adstack/meta-ads-agent/internal/mcp"
	"github.com/adstack/meta-ads-agent/internal/middleware"
	"github.com/adstack/meta-ads-agent/internal/server"
	"github.com/joho/godotenv"
	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Local development convenience; the file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logs := slog.New(slog.NewTextHandler(os.Stderr, nil))
		logs.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "trace":
		logLevel = slog.LevelDebug - 4
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	// Logs go to stderr so the stdio MCP transport keeps stdout to itself.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	}))
	slog.SetDefault(logger)

	srv, err := server.New(cfg.Meta.AccessToken, cfg.Meta.AccountID, cfg.Meta.BaseURL, logger)
	if err != nil {
		logger.Error("failed to initialize agent", "error", err)
		os.Exit(1)
	}

	mcpEnabled := cfg.MCP.Transport != ""

	if mcpEnabled && cfg.HTTP.Enabled {
		go runMCPServer(srv, logger, cfg.MCP.Transport)
	} else if mcpEnabled {
		runMCPServer(srv, logger, cfg.MCP.Transport)
		return
	}

	if cfg.HTTP.Enabled {
		startHTTPServer(srv, logger, cfg)
	}
}

func runMCPServer(srv *server.Server, logger *slog.Logger, transport string) {
	impl := &mcpSdk.Implementation{
		Name:    "Meta Ads Agent",
		Version: "0.1.0",
	}
	mcpServer := mcpSdk.NewServer(impl, nil)

	mcpHandler := mcpHandlers.NewMCPHandler(srv)
	mcpHandler.RegisterTools(mcpServer)

	logger.Info("starting MCP server", "transport", transport)

	var mcpTransport mcpSdk.Transport
	switch transport {
	case "stdio":
		mcpTransport = &mcpSdk.StdioTransport{}
	default:
		logger.Error("unsupported MCP transport", "transport", transport)
		return
	}

	if err := mcpServer.Run(context.Background(), mcpTransport); err != nil {
		logger.Error("MCP server error", "error", err)
	}
}

func startHTTPServer(srv *server.Server, logger *slog.Logger, cfg config.Config) {
	apiKeyStore := auth.NewAPIKeyStore()
	if cfg.APIKey != "" {
		apiKeyStore.AddKey(cfg.APIKey, auth.FullAccessPrincipal("principal_env"))
	}

	httpHandler := httpHandlers.NewHTTPHandler(srv)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", httpHandler.HealthHandler)

	mux.HandleFunc("/create_campaign", httpHandler.CreateCampaignHandler)
	mux.HandleFunc("/get_campaign", httpHandler.GetCampaignHandler)
	mux.HandleFunc("/get_campaigns", httpHandler.GetCampaignsHandler)
	mux.HandleFunc("/update_campaign", httpHandler.UpdateCampaignHandler)
	mux.HandleFunc("/pause_campaign", httpHandler.PauseCampaignHandler)

	mux.HandleFunc("/create_ad_set", httpHandler.CreateAdSetHandler)
	mux.HandleFunc("/get_ad_set", httpHandler.GetAdSetHandler)
	mux.HandleFunc("/get_ad_sets", httpHandler.GetAdSetsHandler)
	mux.HandleFunc("/update_ad_set", httpHandler.UpdateAdSetHandler)
	mux.HandleFunc("/pause_ad_set", httpHandler.PauseAdSetHandler)

	mux.HandleFunc("/create_ad", httpHandler.CreateAdHandler)
	mux.HandleFunc("/get_ad", httpHandler.GetAdHandler)
	mux.HandleFunc("/get_ads", httpHandler.GetAdsHandler)
	mux.HandleFunc("/update_ad", httpHandler.UpdateAdHandler)
	mux.HandleFunc("/pause_ad", httpHandler.PauseAdHandler)

	mux.HandleFunc("/create_ad_creative", httpHandler.CreateAdCreativeHandler)
	mux.HandleFunc("/get_ad_creative", httpHandler.GetAdCreativeHandler)

	mux.HandleFunc("/get_ad_accounts", httpHandler.GetAdAccountsHandler)
	mux.HandleFunc("/get_ad_account", httpHandler.GetAdAccountHandler)

	limiterStore := middleware.NewRateLimiterStore(10, 20, 10*time.Minute)

	// Only the health probe skips authentication.
	publicPaths := []string{"/health"}

	authMiddleware := middleware.ExcludePathsMiddleware(
		middleware.UnifiedAuthMiddleware(cfg.JWTSecretKey, apiKeyStore, logger),
		publicPaths,
	)

	handler := middleware.LoggingMiddleware(logger)(
		middleware.CORSMiddleware(
			authMiddleware(
				middleware.RateLimitMiddleware(limiterStore)(
					middleware.LimitBodySize(cfg.HTTP.BodyLimit)(mux),
				),
			),
		),
	)

	logger.Info("Meta Ads Agent service is running",
		"address", cfg.HTTP.Address,
		"account", "act_"+srv.AccountID,
		"mcp_transport", cfg.MCP.Transport,
	)

	if err := http.ListenAndServe(cfg.HTTP.Address, handler); err != nil {
		logger.Error("server shutdown", "error", err)
	}
}
