package app

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/log"

	"github.com/five82/logparse/internal/config"
	"github.com/five82/logparse/internal/prefs"
	"github.com/five82/logparse/internal/ui"
	"github.com/five82/logparse/internal/workspace"
)

const shutdownTimeout = 2 * time.Second

// Options configure a logparse run.
type Options struct {
	ConfigPath string   // empty uses default ~/.config/logparse/config.toml
	PrefsPath  string   // empty uses default ~/.config/logparse/prefs.toml
	Files      []string // opened when the viewer starts
}

// session is the state shared by every command: settings, the diagnostic
// logger and the workspace of open logs.
type session struct {
	cfg    config.Config
	logger *log.Logger
	ws     *workspace.Workspace
}

func openSession(opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	ws := workspace.New(nil, logger, workspace.Options{
		InitialBatch: cfg.InitialBatch,
		MaxLineBytes: cfg.MaxLineBytes,
	})

	logger.Info("msg", "Session started",
		"component", "app",
		"initial_batch", cfg.InitialBatch,
		"incremental_batch", cfg.IncrementalBatch,
		"default_sort", string(cfg.DefaultSort))

	return &session{cfg: cfg, logger: logger, ws: ws}, nil
}

func (s *session) close() {
	s.logger.Info("msg", "Session finished", "component", "app", "logs", s.ws.Len())
	_ = s.logger.Shutdown(shutdownTimeout)
}

// Run boots the logparse viewer until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	uiOpts := ui.Options{
		Context:   ctx,
		Workspace: s.ws,
		Config:    s.cfg,
		Logger:    s.logger,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Files:     opts.Files,
	}
	return ui.Run(uiOpts)
}
