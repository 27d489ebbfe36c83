package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"sgf_studio/internal/bootstrap"
	"sgf_studio/internal/delivery/tui"
	"sgf_studio/internal/domain/sgf"
	"sgf_studio/internal/usecase/codec"
	"sgf_studio/internal/usecase/editor"
	recorduc "sgf_studio/internal/usecase/record"
)

func main() {
	var (
		out     = pflag.StringP("out", "o", "", "file to save to (defaults to the opened file)")
		logPath = pflag.String("log", filepath.Join(os.TempDir(), "sgf_studio.log"), "log file")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [record.sgf]\n", filepath.Base(os.Args[0]))
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger, err := newFileLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := bootstrap.Defaults()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	path := pflag.Arg(0)
	tree, err := openRecord(path, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		os.Exit(1)
	}

	target := *out
	if target == "" {
		target = path
	}
	if target == "" {
		target = "untitled.sgf"
	}
	title := filepath.Base(target)

	save := func(text string) error {
		if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
			logger.Errorw("save failed", "path", target, "error", err)
			return err
		}
		logger.Infow("record saved", "path", target, "bytes", len(text))
		return nil
	}

	logger.Infow("editor started", "path", path, "nodes", tree.Len())
	if err := tui.Run(editor.New(tree), title, save); err != nil {
		logger.Errorw("editor stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// openRecord reads path, or builds a new game when there is no file yet.
func openRecord(path string, cfg *bootstrap.Config) (*sgf.GameTree, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return codec.Parse(string(data))
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return recorduc.NewGameTree(*cfg, time.Now()), nil
}

func newFileLogger(path string) (*zap.SugaredLogger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
