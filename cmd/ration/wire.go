package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/ration/internal/adapters/driven/ai"
	"github.com/custodia-labs/ration/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ration/internal/adapters/driven/dataset"
	"github.com/custodia-labs/ration/internal/adapters/driving/cli"
	"github.com/custodia-labs/ration/internal/core/services"
	"github.com/custodia-labs/ration/internal/logger"
	"github.com/custodia-labs/ration/internal/postprocessors"
)

// wire builds the services for one command invocation.
func wire(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	logger.Section("Startup")

	dir := opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = file.DefaultDir(); err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	logger.Debug("Config: %s", configStore.Path())

	var closers []func() error

	// A dataset that cannot be opened leaves search unavailable without
	// blocking the other commands.
	foods, err := dataset.New(settings.Dataset)
	if err != nil {
		logger.Warn("Food dataset unavailable: %v", err)
		foods = nil
	} else {
		closers = append(closers, foods.Close)
	}

	llm, err := ai.CreateLLMService(ctx, &settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable, foraging recommendations disabled: %v", err)
		llm = nil
	}
	if llm != nil {
		logger.Debug("LLM: %s (%s)", settings.LLM.Provider.Description(), llm.ModelName())
		closers = append(closers, llm.Close)
	}

	promptDir := filepath.Join(dir, "prompts")
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return nil, err
	}

	foraging := services.NewForagingService(llm, prompts, settings.LLM.OutputFormat)
	foraging.SetRateLimit(settings.LLM.RequestsPerSecond, settings.LLM.Burst)

	cleaner, err := postprocessors.ForFormat(settings.LLM.OutputFormat, settings.LLM.PostProcessors)
	if err != nil {
		return nil, fmt.Errorf("llm post-processors: %w", err)
	}
	logger.Debug("Post-processors: %v", cleaner.Names())
	foraging.SetPostProcessor(cleaner)

	return &cli.Services{
		Calories:  services.NewCalorieService(),
		Search:    services.NewSearchService(foods, settings.Dataset.MaxMatches),
		Foraging:  foraging,
		Settings:  settingsService,
		Prompts:   prompts,
		PromptDir: promptDir,
		Close: func() error {
			var errs []error
			for i := len(closers) - 1; i >= 0; i-- {
				errs = append(errs, closers[i]())
			}
			return errors.Join(errs...)
		},
	}, nil
}

