// Package app wires configuration, storage and services together behind the
// rulecanvas command line.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rulecanvas/internal/canvas"
	"rulecanvas/internal/config"
	"rulecanvas/internal/service"
	"rulecanvas/internal/storage"
)

// App holds the state shared by every command: global flags, the loaded
// configuration and the logger.
type App struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

// New creates a new App.
func New() *App {
	return &App{}
}

// setup loads the configuration and builds the logger. Called before every command.
func (a *App) setup() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := cfg.ZapLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *App) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// openRuleService opens the rule database and builds a RuleService over a
// fresh canvas. The returned close func releases the database.
func (a *App) openRuleService() (*service.RuleService, func(), error) {
	db, err := storage.New(a.cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	a.logger.Debug("database opened", zap.String("path", db.Path()))

	seed := a.cfg.Canvas.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c := canvas.New(canvas.NewRandomPlacer(seed, a.cfg.Canvas.Width, a.cfg.Canvas.Height))
	rules := service.NewRuleService(c, storage.NewRuleStore(db), service.LogEmitter{Logger: a.logger}, a.logger)
	return rules, func() { db.Close() }, nil
}
