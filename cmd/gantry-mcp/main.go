// ABOUTME: Entry point for the gantry-mcp server
// ABOUTME: Wires config, auth gate, tool registry, resources, and the MCP endpoint

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/gantrylabs/gantry-mcp/internal/auth"
	"github.com/gantrylabs/gantry-mcp/internal/config"
	"github.com/gantrylabs/gantry-mcp/internal/mcp"
	"github.com/gantrylabs/gantry-mcp/internal/platform"
	"github.com/gantrylabs/gantry-mcp/internal/resources"
	"github.com/gantrylabs/gantry-mcp/internal/tools"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                    _
  __ _  __ _ _ __ | |_ _ __ _   _       _ __ ___   ___ _ __
 / _' |/ _' | '_ \| __| '__| | | |_____| '_ ' _ \ / __| '_ \
| (_| | (_| | | | | |_| |  | |_| |_____| | | | | | (__| |_) |
 \__, |\__,_|_| |_|\__|_|   \__, |     |_| |_| |_|\___| .__/
 |___/                      |___/                     |_|
`

// getConfigPath returns the path to the config file.
// Priority: GANTRY_MCP_CONFIG env var > XDG_CONFIG_HOME/gantry/mcp.yaml >
// ~/.config/gantry/mcp.yaml
func getConfigPath() string {
	if envPath := os.Getenv("GANTRY_MCP_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "mcp.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "gantry", "mcp.yaml")
}

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch command {
	case "serve":
		err = runServe(ctx)
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprintln(os.Stderr, "Usage: gantry-mcp <command>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  serve   Start the MCP server (default)")
		fmt.Fprintln(os.Stderr, "  health  Check server health")
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Platform:  %s\n", cfg.Platform.BaseURL)
	green.Print("    ▶ ")
	if cfg.Identity.SecretKey != "" {
		fmt.Println("Identity:  verification enabled")
	} else {
		fmt.Println("Identity:  verification disabled (API keys only)")
	}
	fmt.Println()

	logger.Info("starting gantry-mcp",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"platform_url", cfg.Platform.BaseURL,
	)

	// Identity verification is optional: without the secret, structured
	// tokens are rejected at the gate and only platform API keys pass.
	var verifier auth.TokenVerifier
	if cfg.Identity.SecretKey != "" {
		v, err := auth.NewIdentityVerifier(cfg.Identity.VerifyURL, cfg.Identity.SecretKey)
		if err != nil {
			return fmt.Errorf("configuring identity verifier: %w", err)
		}
		verifier = v
	}
	builder := auth.NewContextBuilder(verifier)

	platformf := func(authCtx *auth.AuthContext) *platform.Client {
		return platform.NewClient(platform.Config{
			BaseURL: cfg.Platform.BaseURL,
			Token:   authCtx.Token,
			Logger:  logger,
		})
	}
	var docs *platform.DocsClient
	if cfg.Docs.BaseURL != "" {
		docs = platform.NewDocsClient(cfg.Docs.BaseURL, cfg.Docs.APIKey)
	}

	registry, err := tools.DefaultRegistry(tools.Deps{
		Platform: platformf,
		Docs:     docs,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("building tool registry: %w", err)
	}

	resolver, err := resources.NewResolver(platformf, resources.DefaultProviders(), logger)
	if err != nil {
		return fmt.Errorf("building resource resolver: %w", err)
	}

	server, err := mcp.NewServer(mcp.Config{
		Registry: registry,
		Resolver: resolver,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status": "ok"}`)
	})
	mux.Handle("/mcp", auth.Middleware(builder, logger)(server.Handler()))

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	addr := cfg.Server.HTTPAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server unhealthy: status %d", resp.StatusCode)
	}
	color.New(color.FgGreen).Println("healthy")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = &colorHandler{level: level}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu    sync.Mutex
	level slog.Level
	attrs []slog.Attr
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteByte('\n')
	_, err := os.Stdout.WriteString(buf.String())
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &colorHandler{
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *colorHandler) WithGroup(_ string) slog.Handler {
	return h
}
