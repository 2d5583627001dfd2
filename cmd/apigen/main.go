// Command apigen generates typed apiclient code from endpoint
// declaration files.
//
//	apigen generate -f api.yaml -o client_gen.go
//	apigen generate -f api.yaml -o client_gen.go --watch
//	apigen check -f api.yaml
//
// Every flag can also be set from the environment with an APIGEN_ prefix,
// for example APIGEN_FILE or APIGEN_LOG_LEVEL.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		slog.Error("apigen failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("apigen")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "apigen",
		Short:         "Generate typed API clients from endpoint declarations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			initLogging(v.GetString("log-level"))
		},
	}
	flags := root.PersistentFlags()
	flags.StringP("file", "f", "api.yaml", "endpoint declaration file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(newGenerateCmd(v), newCheckCmd(v))
	return root
}

// initLogging configures slog with tint, dropping colour when stderr is
// not a terminal.
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
