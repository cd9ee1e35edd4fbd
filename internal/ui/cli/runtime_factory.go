package cli

import (
	coreapp "bemlint/internal/core/app"
	"bemlint/internal/core/config"
	"context"
	"fmt"
)

type lintService interface {
	Lint(ctx context.Context, args []string, all bool) (coreapp.Report, error)
	Watch(ctx context.Context, args []string, all bool, onReport func(coreapp.Report)) error
	Close() error
}

type appFactory interface {
	New(cfg *config.Config, enableHistory bool) (lintService, error)
}

type coreAppFactory struct{}

func (coreAppFactory) New(cfg *config.Config, enableHistory bool) (lintService, error) {
	return coreapp.New(cfg, coreapp.Options{EnableHistory: enableHistory})
}

func initializeApp(cfg *config.Config, enableHistory bool, factory appFactory) (lintService, error) {
	if factory == nil {
		return nil, fmt.Errorf("app factory is required")
	}
	return factory.New(cfg, enableHistory)
}
