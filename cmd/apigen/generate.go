package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjaus/apiclient/surface"
)

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the typed client for a declaration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, out := v.GetString("file"), v.GetString("out")
			run := func() error { return generate(path, out, cmd.OutOrStdout()) }
			if !v.GetBool("watch") {
				return run()
			}
			if err := run(); err != nil {
				slog.Warn("generate failed", "file", path, "err", err)
			}
			return watch(cmd.Context(), path, run)
		},
	}
	cmd.Flags().StringP("out", "o", "", "output file (stdout when empty or -)")
	cmd.Flags().Bool("watch", false, "regenerate whenever the declaration file changes")
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func generate(path, out string, stdout io.Writer) error {
	s, err := surface.LoadFile(path)
	if err != nil {
		return err
	}
	src, err := surface.Generate(s)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if out == "" || out == "-" {
		_, err = stdout.Write(src)
		return err
	}
	//nolint:gosec // generated source is meant to be world readable
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return err
	}
	slog.Info("generated", "file", out, "package", s.Package, "endpoints", len(s.Endpoints))
	return nil
}

// watch calls regenerate each time path is written or replaced, until ctx
// is done. The parent directory is watched so editors that save by rename
// are seen.
func watch(ctx context.Context, path string, regenerate func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	slog.Info("watching", "file", path)

	name := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("declaration changed", "file", path, "op", event.Op.String())
			if err := regenerate(); err != nil {
				slog.Warn("generate failed", "file", path, "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("error watching declarations", "err", err)
		}
	}
}
