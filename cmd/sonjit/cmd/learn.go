package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sonjit/internal/chosung"
	"sonjit/internal/geom"
	"sonjit/internal/gestureio"
	"sonjit/internal/stroke"
)

var learnLabel string

var learnCmd = &cobra.Command{
	Use:   "learn <recordings.yaml>...",
	Short: "Add recorded gestures to the template directory",
	Long: `Save every gesture recording as a new consonant template. The label
comes from the recording unless --label is given. Pinch recordings are
skipped.

Example:
  sonjit learn --templates ./templates giyeok.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLearn,
}

func init() {
	learnCmd.Flags().StringVar(&learnLabel, "label", "", "label for every saved template")
	rootCmd.AddCommand(learnCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings()
	if err != nil {
		return err
	}

	saved := 0
	for _, path := range args {
		recs, err := stroke.LoadRecordings(path)
		if err != nil {
			return err
		}
		for i, rec := range recs {
			kind, err := stroke.ParseKind(rec.Kind)
			if err != nil {
				return fmt.Errorf("%s: recording %d: %w", path, i, err)
			}
			if kind != stroke.Gesture {
				continue
			}
			label := rec.Label
			if learnLabel != "" {
				label = learnLabel
			}
			if chosung.Label(label) == 0 {
				return fmt.Errorf("%s: recording %d: missing label", path, i)
			}
			strokes, err := rec.Geom()
			if err != nil {
				return fmt.Errorf("%s: recording %d: %w", path, i, err)
			}
			file, err := gestureio.Save(cfg.Chosung.Templates, label, geom.Flatten(strokes, cfg.Chosung.FlipY))
			if err != nil {
				return err
			}
			log.Debug("template saved", "label", label, "path", file)
			fmt.Fprintln(cmd.OutOrStdout(), file)
			saved++
		}
	}
	log.Info("templates saved", "count", saved, "dir", cfg.Chosung.Templates)
	return nil
}
