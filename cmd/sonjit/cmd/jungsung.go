package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"sonjit/internal/jungsung"
	"sonjit/internal/stroke"
)

var jungsungCmd = &cobra.Command{
	Use:   "jungsung [recordings.yaml]...",
	Short: "Show the vowel grid, or trace pinch recordings through it",
	Args:  cobra.ArbitraryArgs,
	RunE:  runJungsung,
}

func init() {
	rootCmd.AddCommand(jungsungCmd)
}

func runJungsung(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprint(out, formatGrid())
		return nil
	}

	cfg, _, err := loadSettings()
	if err != nil {
		return err
	}
	rec := jungsung.NewRecognizer(cfg.JungsungOptions())
	for _, path := range args {
		recs, err := stroke.LoadRecordings(path)
		if err != nil {
			return err
		}
		for i, r := range recs {
			kind, err := stroke.ParseKind(r.Kind)
			if err != nil {
				return fmt.Errorf("%s: recording %d: %w", path, i, err)
			}
			if kind != stroke.Pinch || len(r.Strokes) == 0 {
				continue
			}
			strokes, err := r.Geom()
			if err != nil {
				return fmt.Errorf("%s: recording %d: %w", path, i, err)
			}
			tr, ok := rec.Trace(strokes[0])
			if !ok {
				fmt.Fprintf(out, "%s too short\n", runewidth.FillRight(r.Label, 4))
				continue
			}
			vowel := "-"
			if v := jungsung.Lookup(tr.NX, tr.NY); v != 0 {
				vowel = string(v)
			}
			fmt.Fprintf(out, "%s nx=%+d ny=%+d depth=%d -> %s\n",
				runewidth.FillRight(r.Label, 4), tr.NX, tr.NY, tr.DepthCrossings, vowel)
		}
	}
	return nil
}

// formatGrid renders the vowel table with the origin at the centre.
func formatGrid() string {
	var b strings.Builder
	for ny := -3; ny <= 3; ny++ {
		for nx := -4; nx <= 4; nx++ {
			cell := "·"
			switch v := jungsung.Lookup(nx, ny); {
			case nx == 0 && ny == 0:
				cell = "+"
			case v != 0:
				cell = string(v)
			}
			b.WriteString(runewidth.FillRight(cell, 3))
		}
		b.WriteString("\n")
	}
	return b.String()
}
