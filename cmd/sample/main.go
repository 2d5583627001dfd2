// Command sample runs a small users API in process and drives it through
// a typed github.com/bjaus/apiclient client with logging, rate limiting,
// and metrics middleware.
//
// Run:
//
//	go run ./cmd/sample
//	go run ./cmd/sample -rate 5 -compress -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/bjaus/apiclient"
)

func main() {
	rate := flag.Float64("rate", 20, "client requests per second")
	timeout := flag.Duration("timeout", 2*time.Second, "per-request timeout")
	compress := flag.Bool("compress", false, "ask the server for compressed responses")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	initLogging(*logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, config{rate: *rate, timeout: *timeout, compress: *compress})
	cancel()
	if err != nil {
		slog.Error("sample failed", "err", err)
		os.Exit(1)
	}
}

type config struct {
	rate     float64
	timeout  time.Duration
	compress bool
}

func run(ctx context.Context, cfg config) error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: newServer(newUserStore()), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "err", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown", "err", err)
		}
	}()

	base := "http://" + ln.Addr().String()
	slog.Info("demo API listening", "url", base)

	reg := prometheus.NewRegistry()
	api := newUsersAPI(newClient(base, reg, cfg))
	if err := exercise(ctx, api); err != nil {
		return err
	}
	return report(reg)
}

func newClient(base string, reg prometheus.Registerer, cfg config) *apiclient.Client {
	var httpOpts []apiclient.HTTPOption
	if cfg.compress {
		httpOpts = append(httpOpts, apiclient.WithCompression())
	}
	root := apiclient.New(apiclient.NewHTTPFetcher(httpOpts...),
		apiclient.WithBaseURL(base),
		apiclient.WithLogger(slog.Default()),
		apiclient.WithMiddleware(
			apiclient.Logger(slog.Default()),
			apiclient.Metrics(reg),
			apiclient.RateLimit(apiclient.RateLimitConfig{Rate: cfg.rate, Burst: 2}),
			apiclient.Timeout(cfg.timeout),
		),
	)
	return root.Group("/v1")
}

// exercise creates users concurrently, then reads, updates, and deletes
// them.
func exercise(ctx context.Context, api *usersAPI) error {
	inputs := []userInput{
		{Name: "ada", Email: "ada@example.com", Role: "admin"},
		{Name: "grace", Email: "grace@example.com", Role: "admin"},
		{Name: "linus", Email: "linus@example.com", Role: "member"},
		{Name: "margaret", Email: "margaret@example.com", Role: "member"},
	}

	created := make([]*User, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			u, err := api.createUser(gctx, apiclient.Void{}, in)
			if err != nil {
				return fmt.Errorf("create %s: %w", in.Name, err)
			}
			created[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	admin := "admin"
	admins, err := api.listUsers(ctx, apiclient.Void{}, listQuery{Role: &admin})
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	adminsURL, err := api.urls.users(apiclient.Void{}, listQuery{Role: &admin})
	if err != nil {
		return err
	}
	slog.Info("admins", "url", adminsURL, "count", len(*admins))

	g, gctx = errgroup.WithContext(ctx)
	for _, u := range created {
		g.Go(func() error {
			got, err := api.getUser(gctx, userParams{ID: u.ID}, apiclient.Void{})
			if err != nil {
				return fmt.Errorf("get %s: %w", u.ID, err)
			}
			slog.Debug("fetched user", "id", got.ID, "name", got.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	target := created[len(created)-1]
	updated, err := api.updateUser(ctx, userParams{ID: target.ID}, userInput{Role: "admin"})
	if err != nil {
		return fmt.Errorf("update %s: %w", target.ID, err)
	}
	slog.Info("promoted", "name", updated.Name, "role", updated.Role)

	gone, err := api.deleteUser(ctx, userParams{ID: created[0].ID}, apiclient.Void{})
	if err != nil {
		return fmt.Errorf("delete %s: %w", created[0].ID, err)
	}
	slog.Info("deleted", "id", created[0].ID, "deleted", gone.Deleted)

	url, err := api.urls.user(userParams{ID: created[0].ID}, apiclient.Void{})
	if err != nil {
		return err
	}
	missing, err := api.getUser(ctx, userParams{ID: created[0].ID}, apiclient.Void{})
	if err != nil {
		return fmt.Errorf("get deleted user: %w", err)
	}
	// Status codes are left to the caller; a 404 still decodes.
	slog.Info("after delete", "url", url, "id", missing.ID)

	remaining, err := api.listUsers(ctx, apiclient.Void{}, listQuery{})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	slog.Info("remaining users", "count", len(*remaining))
	return nil
}

// report logs the request counts recorded by the metrics middleware.
func report(reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if mf.GetName() != "apiclient_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			attrs := []any{"count", m.GetCounter().GetValue()}
			for _, l := range m.GetLabel() {
				attrs = append(attrs, l.GetName(), l.GetValue())
			}
			slog.Info("requests", attrs...)
		}
	}
	return nil
}

func initLogging(level string) {
	var ll slog.Level
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	slog.SetDefault(slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))
}
