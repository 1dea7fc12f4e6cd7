package app

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/healthcheck/internal/application/collect"
	"github.com/doeshing/healthcheck/internal/application/doctor"
	"github.com/doeshing/healthcheck/internal/application/venv"
	"github.com/doeshing/healthcheck/internal/domain"
	"github.com/doeshing/healthcheck/internal/infrastructure/config"
	"github.com/doeshing/healthcheck/internal/infrastructure/database"
	"github.com/doeshing/healthcheck/internal/infrastructure/executor"
	"github.com/doeshing/healthcheck/internal/infrastructure/probe"
	"github.com/doeshing/healthcheck/internal/infrastructure/snapshot"
	"github.com/doeshing/healthcheck/internal/pkg/logger"
	"github.com/doeshing/healthcheck/internal/ports"
)

// Settings are the global CLI flags the container is built from.
type Settings struct {
	Root       string
	ConfigPath string
	Verbose    bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Root           string
	ProjectFS      fs.FS
	Logger         ports.Logger
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Runner         ports.CommandRunner
	Users          ports.UserLister
	Snapshot       ports.SnapshotWriter
	DoctorService  *doctor.Service
	CollectService *collect.Service
	VenvService    *venv.Service
}

// BuildContainer constructs the dependency graph for one project root.
// A broken config file does not fail the build: services report it when they
// load config, and init can still overwrite it.
func BuildContainer(ctx context.Context, settings Settings) (*Container, error) {
	root := settings.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(settings.Verbose)
	cfgLoader := config.NewFileLoader(root, settings.ConfigPath)

	interpreter := domain.DefaultInterpreter
	if cfg, err := cfgLoader.Load(ctx); err != nil {
		log.Warn("config not loaded while wiring, using default interpreter", map[string]interface{}{"error": err.Error()})
	} else if cfg.Runtime.Interpreter != "" {
		interpreter = cfg.Runtime.Interpreter
	}

	runner := executor.NewLocalExecutor()
	store := database.NewStore(root)

	return &Container{
		Root:           root,
		ProjectFS:      os.DirFS(root),
		Logger:         log,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Runner:         runner,
		Users:          store,
		Snapshot:       snapshot.NewTreeWriter(),
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			Interpreter:    probe.NewInterpreter(interpreter, runner),
			Database:       store,
			Logger:         log,
		},
		CollectService: &collect.Service{
			ConfigProvider: cfgLoader,
			Logger:         log,
		},
		VenvService: &venv.Service{
			ConfigProvider: cfgLoader,
			Runner:         runner,
			Logger:         log,
		},
	}, nil
}
