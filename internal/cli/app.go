package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	appRepos "github.com/yigit/registrar/internal/app/repositories"
	appServices "github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/bootstrap"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// OpenFunc opens the storage backend named by the config file at configPath.
type OpenFunc func(ctx context.Context, configPath string) (appRepos.KeyValueRepository, zerolog.Logger, error)

// OpenConfiguredStorage is the OpenFunc used by the registrar binary. The
// returned logger is tagged for the store.
func OpenConfiguredStorage(ctx context.Context, configPath string) (appRepos.KeyValueRepository, zerolog.Logger, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	repo, err := bootstrap.SetupStorage(ctx, cfg, lgr)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	return repo, logger.Component("store"), nil
}

// app opens the store on first use so commands like serve and help never touch storage.
type app struct {
	open       OpenFunc
	configPath string

	repo  appRepos.KeyValueRepository
	store *appServices.Store
}

func (a *app) Store(ctx context.Context) (*appServices.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	repo, lgr, err := a.open(ctx, a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a.repo = repo
	a.store = appServices.NewStore(ctx, repo, lgr)
	return a.store, nil
}

// run adapts fn into a RunE that opens the store first and closes storage
// when fn returns, whether or not it failed. fn's error wins over Close's.
func (a *app) run(fn func(cmd *cobra.Command, store *appServices.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if closeErr := a.Close(); err == nil {
				err = closeErr
			}
		}()

		store, err := a.Store(cmd.Context())
		if err != nil {
			return err
		}
		return fn(cmd, store, args)
	}
}

func (a *app) Close() error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo, a.store = nil, nil
	return err
}
