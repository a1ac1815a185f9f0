package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"sonjit/internal/chosung"
	"sonjit/internal/complete"
	"sonjit/internal/config"
	"sonjit/internal/engine"
	"sonjit/internal/gestureio"
	"sonjit/internal/jungsung"
	"sonjit/internal/pdollar"
)

// loadRecognizer builds the consonant recognizer from the template
// directory. A missing directory yields nil so keyboard-only use still works.
func loadRecognizer(cfg config.Config, log *slog.Logger) (*chosung.Recognizer, error) {
	gestures, err := gestureio.LoadDir(cfg.Chosung.Templates)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("template directory not found", "dir", cfg.Chosung.Templates)
			return nil, nil
		}
		if len(gestures) == 0 {
			return nil, err
		}
		log.Warn("some templates were skipped", "dir", cfg.Chosung.Templates, "err", err)
	}

	classifier := pdollar.New(cfg.ClassifierOptions())
	set := chosung.NewTemplateSet(classifier, gestures)
	log.Info("templates loaded", "dir", cfg.Chosung.Templates, "templates", set.Len(), "labels", len(set.Labels()))
	return chosung.NewRecognizer(classifier, set, cfg.ChosungOptions()), nil
}

func loadCompleter(cfg config.Config, log *slog.Logger) (complete.Completer, error) {
	if cfg.Complete.Dictionary == "" {
		return nil, nil
	}
	dict, err := complete.LoadDictionary(cfg.Complete.Dictionary)
	if err != nil {
		return nil, err
	}
	log.Info("dictionary loaded", "path", cfg.Complete.Dictionary, "words", dict.Len())
	return dict, nil
}

func newEngine(cfg config.Config, log *slog.Logger, text engine.Text) (*engine.Engine, error) {
	cho, err := loadRecognizer(cfg, log)
	if err != nil {
		return nil, err
	}
	comp, err := loadCompleter(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	opts := engine.Options{
		Completer:     comp,
		CompleteLimit: cfg.Complete.Limit,
		Logger:        log,
	}
	return engine.New(cho, jungsung.NewRecognizer(cfg.JungsungOptions()), text, opts), nil
}
