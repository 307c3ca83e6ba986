package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/chrisneven/qstate/internal/config"
	"github.com/chrisneven/qstate/pkg/bridge"
	"github.com/chrisneven/qstate/pkg/codec"
	"github.com/chrisneven/qstate/pkg/middleware"
	"github.com/chrisneven/qstate/pkg/qstate"
	"github.com/chrisneven/qstate/pkg/query"
)

func serveCmd() *cobra.Command {
	var (
		host string
		port int
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "listen host")
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "listen port")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory containing "+config.ConfigFileName)
	return cmd
}

// demoSchema is the typed view the demo page and the server share.
var demoSchema = query.MustSchema(map[string]query.Setting{
	"page": query.NewParam(codec.Int()).Default(1),
	"q":    query.NewParam(codec.String()),
	"tags": query.NewParam(codec.StringList()),
})

func serve(cfg *config.Config) error {
	logger := slog.Default().With("component", "demo", "app", cfg.Name)

	br := bridge.New(bridge.Config{Logger: logger.With("component", "bridge")})
	eng, err := qstate.New(br,
		qstate.WithLogger(logger.With("component", "qstate")),
		qstate.WithHooks(
			middleware.Metrics(middleware.WithNamespace("qstate_demo")),
			middleware.OTel(middleware.WithTracerName("qstate-demo")),
		),
	)
	if err != nil {
		return err
	}

	// Log each observed change with its freshly decoded state.
	last := ""
	eng.Subscribe(func() {
		snap, err := eng.Snapshot(demoSchema)
		if err != nil || snap == last {
			return
		}
		last = snap
		state, err := eng.Decode(demoSchema)
		if err != nil {
			return
		}
		page, _ := query.Get[int](state, "page")
		q, _ := query.Get[string](state, "q")
		logger.Info("query state changed", "page", page, "q", q)
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Handle(cfg.BridgePath, br.Handler())
	r.Handle(cfg.MetricsPath, promhttp.Handler())
	r.Get("/", demoPage(cfg.BridgePath))

	logger.Info("demo server listening",
		"addr", cfg.Addr(),
		"bridge", cfg.BridgePath,
		"metrics", cfg.MetricsPath,
	)
	return http.ListenAndServe(cfg.Addr(), r)
}

func demoPage(bridgePath string) http.HandlerFunc {
	script := strings.ReplaceAll(bridge.ClientScript,
		"__QSTATE_WS__",
		fmt.Sprintf("(location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + %q", bridgePath),
	)

	page := `<!doctype html>
<html>
<head><title>qstate demo</title></head>
<body>
  <h1>qstate demo</h1>
  <p>Edit the query string, use back/forward, or click the buttons.
     The server log mirrors every change.</p>
  <button onclick="history.replaceState(null,'', '?q=hi&page=1'); window.qstateReport()">?q=hi&amp;page=1</button>
  <button onclick="history.replaceState(null,'', '?q=hi&page=2'); window.qstateReport()">?q=hi&amp;page=2</button>
  <script>` + script + `</script>
</body>
</html>`

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}
