// reader-bridge exposes a Readwise Reader library to MCP clients over
// stdio, with one-shot fetch/save commands for use without an MCP host.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reader-bridge/internal/adapters/driven/feeds"
	"github.com/custodia-labs/reader-bridge/internal/adapters/driven/memstore"
	"github.com/custodia-labs/reader-bridge/internal/adapters/driven/readwise"
	mcpserver "github.com/custodia-labs/reader-bridge/internal/adapters/driving/mcp"
	"github.com/custodia-labs/reader-bridge/internal/config"
	"github.com/custodia-labs/reader-bridge/internal/core/domain"
	"github.com/custodia-labs/reader-bridge/internal/core/ports/driving"
	"github.com/custodia-labs/reader-bridge/internal/core/services"
	"github.com/custodia-labs/reader-bridge/internal/worker"
)

var version = "dev"

var flagConfig string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired core for the CLI commands.
type app struct {
	cfg     *config.Config
	library driving.LibraryService
	logger  *slog.Logger
}

// newApp loads config and wires the adapters to the library service.
// Logs go to stderr: stdout belongs to the MCP stdio transport.
func newApp() (*app, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	client := readwise.NewClient(readwise.Config{
		Token:      cfg.Token,
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeoutDuration()},
		Logger:     logger,
	})
	library := services.NewLibraryService(services.LibraryConfig{
		Client: client,
		Store:  memstore.New(),
		Feeds:  feeds.NewParser(),
		Logger: logger,
	})

	return &app{cfg: cfg, library: library, logger: logger}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reader-bridge",
		Short:         "MCP bridge for Readwise Reader",
		Long:          "reader-bridge serves a Readwise Reader library to MCP clients and offers one-shot fetch/save commands.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newSaveCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP stdio endpoint",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.NewServer(mcpserver.Config{
		Library: a.library,
		Logger:  a.logger,
		Version: version,
	})

	if interval := a.cfg.RefreshDuration(); interval > 0 {
		refresher := worker.NewRefresher(worker.RefresherConfig{
			Library:   a.library,
			Location:  a.cfg.Location(),
			Interval:  interval,
			Logger:    a.logger,
			OnRefresh: srv.PublishResources,
		})
		if err := refresher.Start(ctx); err != nil {
			return err
		}
		defer refresher.Stop()
	}

	a.logger.Info("reader-bridge serving", "version", version)
	return srv.Run(ctx)
}

func newFetchCmd() *cobra.Command {
	var location, category, updatedAfter string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch documents and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			docs, err := a.library.FetchDocuments(ctx, location, category, updatedAfter)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("No documents found.")
				return nil
			}

			rendered := make([]string, 0, len(docs))
			for _, doc := range docs {
				rendered = append(rendered, domain.FormatDocument(doc))
			}
			fmt.Printf("%d documents found:\n%s", len(docs), strings.Join(rendered, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "location", "new", "location to fetch (new, later, shortlist, archive, feed)")
	cmd.Flags().StringVar(&category, "category", "", "category filter (article, email, rss, ...)")
	cmd.Flags().StringVar(&updatedAfter, "updated-after", "", "only documents updated after this RFC 3339 timestamp")
	return cmd
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <url>",
		Short: "Save a URL to Reader",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			existed, result, err := a.library.SaveURL(ctx, args[0])
			if err != nil {
				return err
			}
			if existed {
				fmt.Printf("Document already exists with the ID: %s\n", result.ID)
			} else {
				fmt.Printf("Added document with the ID: %s\n", result.ID)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("reader-bridge %s\n", version)
		},
	}
}
