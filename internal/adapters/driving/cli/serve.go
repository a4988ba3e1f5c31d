package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ration/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ration/internal/adapters/driving/api"
	"github.com/custodia-labs/ration/internal/logger"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API used by the web form:

  GET  /api/health      liveness check
  POST /api/formSubmit  caloric intake and foraging recommendations (NDJSON or SSE)
  POST /api/search      food search

Prompt templates in the prompts directory are reloaded when they change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from settings, 8080)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "interface to bind (default all)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if app == nil || app.Settings == nil || app.Calories == nil || app.Search == nil || app.Foraging == nil {
		return errors.New("services not configured")
	}

	settings, err := app.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	server, err := api.NewServer(api.Config{
		AllowedOrigins: settings.Server.AllowedOrigins,
	}, api.Services{
		Calories: app.Calories,
		Search:   app.Search,
		Foraging: app.Foraging,
	})
	if err != nil {
		return err
	}

	port := settings.Server.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	addr := net.JoinHostPort(serveHost, strconv.Itoa(port))

	var lc net.ListenConfig
	ln, err := lc.Listen(cmd.Context(), "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	cmd.Printf("Listening on http://%s\n", displayAddr(ln.Addr().String()))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return server.Serve(ctx, ln)
	})
	if app.Prompts != nil && app.PromptDir != "" {
		watcher := file.NewPromptWatcher(app.PromptDir, app.Prompts)
		g.Go(func() error {
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("Prompt hot reload disabled: %v", err)
			}
			return nil
		})
	}

	return g.Wait()
}

func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host != "" {
		return addr
	}
	return net.JoinHostPort("localhost", port)
}
