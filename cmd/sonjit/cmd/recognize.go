package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"sonjit/internal/chosung"
	"sonjit/internal/stroke"
	"sonjit/internal/textbuf"
)

var showCandidates bool

var recognizeCmd = &cobra.Command{
	Use:   "recognize <recordings.yaml>...",
	Short: "Replay stroke recordings and print the composed text",
	Long: `Replay recorded gestures and pinches through the capture and the
composer, in file order, and print the resulting text.

Example:
  sonjit recognize hangul.yaml
  sonjit recognize --candidates g.yaml a.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecognize,
}

func init() {
	recognizeCmd.Flags().BoolVar(&showCandidates, "candidates", false, "print ranked candidates for each gesture")
	rootCmd.AddCommand(recognizeCmd)
}

func runRecognize(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings()
	if err != nil {
		return err
	}
	buf := textbuf.New(cfg.Text.MaxBytes)
	eng, err := newEngine(cfg, log, buf)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	capture := stroke.NewCapture()
	for _, path := range args {
		recs, err := stroke.LoadRecordings(path)
		if err != nil {
			return err
		}
		for i, rec := range recs {
			events, err := capture.Replay(rec)
			if err != nil {
				return fmt.Errorf("%s: recording %d: %w", path, i, err)
			}
			var last []chosung.Candidate
			for _, ev := range events {
				up, err := eng.Handle(ev)
				if err != nil {
					return fmt.Errorf("%s: recording %d: %w", path, i, err)
				}
				if up.Candidates != nil {
					last = up.Candidates
				}
			}
			if showCandidates && last != nil {
				fmt.Fprintf(out, "%s %s\n", runewidth.FillRight(rec.Label, 4), formatCandidates(last))
			}
		}
	}
	eng.Commit()
	fmt.Fprintln(out, eng.Text())
	return nil
}

func formatCandidates(cands []chosung.Candidate) string {
	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = fmt.Sprintf("%s %.3f", string(c.Letter), c.Score)
	}
	return strings.Join(parts, "  ")
}
