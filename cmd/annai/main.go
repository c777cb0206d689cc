// Package main is the Annai CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/annai/internal/catalog"
	"github.com/hyperjump/annai/internal/cli"
	"github.com/hyperjump/annai/internal/config"
	"github.com/hyperjump/annai/internal/embedding"
	"github.com/hyperjump/annai/internal/history"
	"github.com/hyperjump/annai/internal/keyword"
	"github.com/hyperjump/annai/internal/router"
	"github.com/hyperjump/annai/internal/runner"
	"github.com/hyperjump/annai/internal/server"
	"github.com/hyperjump/annai/internal/store"
	"github.com/hyperjump/annai/internal/vector"
	"github.com/hyperjump/annai/internal/watcher"
	"github.com/hyperjump/annai/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/annai/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "annai server" from the project dir uses the project's config.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "route":
		runRoute()
	case "exec":
		runExec()
	case "build":
		runBuild()
	case "models":
		runModels()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("annai version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Routing.WatchCatalog && cfg.Storage.CatalogPath != "" {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		engine := components.Engine
		kw := components.Keyword
		w := watcher.New(cfg.Storage.CatalogPath, func(path string) {
			cat, loadErr := catalog.Load(path)
			if loadErr != nil {
				logger.Warn("catalog reload skipped", zap.String("path", path), zap.Error(loadErr))
				return
			}
			if reloadErr := engine.Reload(context.Background(), cat); reloadErr != nil {
				logger.Warn("catalog reload failed", zap.Error(reloadErr))
				return
			}
			if kw != nil {
				if rebuildErr := kw.Rebuild(cat); rebuildErr != nil {
					logger.Warn("keyword index rebuild failed", zap.Error(rebuildErr))
				}
			}
		}, watchOpts...)
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start catalog watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	srv := server.NewServer(
		components.Engine,
		components.History,
		components.Keyword,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if cfg.Storage.IndexDir != "" {
		if err := components.Store.Save(cfg.Storage.IndexDir); err != nil {
			logger.Warn("index save failed", zap.String("dir", cfg.Storage.IndexDir), zap.Error(err))
		}
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func parseOutputFormat(name string) (cli.OutputFormat, error) {
	switch name {
	case "json":
		return cli.OutputJSON, nil
	case "text", "":
		return cli.OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", name)
	}
}

func runRoute() {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = route locally without a server)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: annai route [flags] <query>")
		os.Exit(1)
	}
	queryStr := buildQuery(fs.Args())
	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serverURL != "" {
		decision, err := routeViaHTTP(*serverURL, queryStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Routing failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteDecision(os.Stdout, decision, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	components := mustInitialize(*configPath)
	defer components.Close()

	decision, err := components.Engine.Route(context.Background(), queryStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Routing failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteDecision(os.Stdout, decision, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runExec() {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = execute locally without a server)")
	showDecision := fs.Bool("explain", false, "also print the routing decision")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: annai exec [flags] <query>")
		os.Exit(1)
	}
	queryStr := buildQuery(fs.Args())

	if *serverURL != "" {
		decision, response, err := executeViaHTTP(*serverURL, queryStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
			os.Exit(1)
		}
		if *showDecision {
			_ = cli.WriteDecision(os.Stdout, decision, cli.OutputText)
			fmt.Println()
		}
		fmt.Println(response)
		return
	}

	components := mustInitialize(*configPath)
	defer components.Close()

	decision, err := components.Engine.Route(context.Background(), queryStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Routing failed: %v\n", err)
		os.Exit(1)
	}
	response, err := runner.Execute(decision.SelectedModel, queryStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
	if *showDecision {
		_ = cli.WriteDecision(os.Stdout, decision, cli.OutputText)
		fmt.Println()
	}
	fmt.Println(response)
}

func runBuild() {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	components := mustInitialize(*configPath)
	defer components.Close()

	if err := components.Engine.BuildIndex(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
		os.Exit(1)
	}
	if err := components.Store.Save(cfg.Storage.IndexDir); err != nil {
		fmt.Fprintf(os.Stderr, "Save failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Index built: %d models, %d dimensions, saved to %s\n",
		components.Store.Size(), components.Store.Dimensions(), cfg.Storage.IndexDir)
}

func runModels() {
	fs := flag.NewFlagSet("models", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	cat := catalog.Default()
	if err == nil && cfg.Storage.CatalogPath != "" {
		loaded, loadErr := catalog.Load(cfg.Storage.CatalogPath)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", loadErr)
			os.Exit(1)
		}
		cat = loaded
	}

	if err := cli.WriteModels(os.Stdout, cat.Models(), format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Decode response: %v\n", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(status)
}

func routeViaHTTP(serverURL, query string) (*router.Decision, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/route", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var decision router.Decision
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &decision, nil
}

func executeViaHTTP(serverURL, query string) (*router.Decision, string, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, "", err
	}
	resp, err := http.Post(serverURL+"/api/v1/execute", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		Decision *router.Decision `json:"decision"`
		Response string           `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("decode response: %w", err)
	}
	return out.Decision, out.Response, nil
}

// Components holds initialized services.
type Components struct {
	Embedder embedding.Embedder
	Store    *store.Store
	Engine   *router.Engine
	Keyword  *keyword.Index
	History  *history.Log
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Keyword != nil {
		_ = c.Keyword.Close()
	}
	if c.History != nil {
		_ = c.History.Close()
	}
}

func mustInitialize(configPath string) *Components {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return components
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		logger.Info("ONNX embedder unavailable, using deterministic mock",
			zap.String("model_path", cfg.Embedding.ModelPath), zap.Error(err))
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	cat := catalog.Default()
	if cfg.Storage.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.Storage.CatalogPath)
		if err != nil {
			_ = embedder.Close()
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = loaded
	}

	st := store.New(embedder, string(vector.IndexTypeFlat), cfg.Routing.SimilarityScale, logger)
	engine := router.NewEngine(st, cat, nil, logger)

	loaded := false
	if cfg.Storage.IndexDir != "" {
		if loadErr := st.Load(cfg.Storage.IndexDir); loadErr == nil {
			loaded = true
			logger.Info("index loaded", zap.String("dir", cfg.Storage.IndexDir), zap.Int("size", st.Size()))
		} else {
			logger.Debug("index load skipped", zap.String("dir", cfg.Storage.IndexDir), zap.Error(loadErr))
		}
	}
	if !loaded {
		if err := engine.BuildIndex(context.Background()); err != nil {
			_ = st.Close()
			_ = embedder.Close()
			return nil, fmt.Errorf("failed to build index: %w", err)
		}
		logger.Info("index built from catalog", zap.Int("models", cat.Size()))
	}

	kw, err := keyword.NewIndex(cat)
	if err != nil {
		_ = st.Close()
		_ = embedder.Close()
		return nil, fmt.Errorf("failed to build keyword index: %w", err)
	}

	var histLog *history.Log
	if cfg.Routing.HistoryEnabledOrDefault() && cfg.Storage.HistoryPath != "" {
		histLog, err = history.Open(cfg.Storage.HistoryPath)
		if err != nil {
			_ = kw.Close()
			_ = st.Close()
			_ = embedder.Close()
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
	}

	return &Components{
		Embedder: embedder,
		Store:    st,
		Engine:   engine,
		Keyword:  kw,
		History:  histLog,
	}, nil
}

func printUsage() {
	fmt.Println(`annai - Embedding-based model router

Usage:
  annai server [flags]           Start the HTTP server
  annai route [flags] <query>    Route a query and print the decision
  annai exec [flags] <query>     Route a query and run it on the selected model
  annai build [flags]            Build the embedding index and save it to disk
  annai models [flags]           List catalog models
  annai status [flags]           Show server status
  annai version                  Show version
  annai help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/annai/config.yaml)
  --debug            Enable debug logging

Route / Exec Flags:
  --config string    Config file path (for local mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to route locally.
  --output string    Output format: text or json (route only; default: text)
  --explain          Also print the routing decision (exec only)

Examples:
  annai server
  annai route "What is 2 + 3?"
  annai route --output json solve the differential equation
  annai exec --explain "Roast me"
  annai build
  annai models
  annai status`)
}
