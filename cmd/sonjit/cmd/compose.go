package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sonjit/internal/engine"
	"sonjit/internal/hangul"
	"sonjit/internal/textbuf"
)

var composeTrace bool

var composeCmd = &cobra.Command{
	Use:   "compose <jamo>...",
	Short: "Feed letters to the composer and print the text",
	Long: `Feed compatibility jamo one at a time, as finished consonants and
vowels, and print the composed text. Spaces separate words; '<' deletes one
letter.

Example:
  sonjit compose ㅎㅏㄴㄱㅡㄹ
  sonjit compose --trace ㄷㅏㄹㄱㅣ`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().BoolVar(&composeTrace, "trace", false, "print composer slot and commit events")
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := engine.Options{CompleteLimit: cfg.Complete.Limit, Logger: log}
	if composeTrace {
		opts.Hooks = traceHooks(out)
	}
	eng := engine.New(nil, nil, textbuf.New(cfg.Text.MaxBytes), opts)

	for i, arg := range args {
		if i > 0 {
			eng.Space()
		}
		for _, r := range arg {
			switch {
			case r == '<':
				eng.Backspace()
			case r == ' ':
				eng.Space()
			default:
				eng.TypeJamo(r)
			}
		}
	}
	eng.Commit()
	fmt.Fprintln(out, strings.TrimRight(eng.Text(), " "))
	return nil
}

func traceHooks(out io.Writer) hangul.Hooks {
	return hangul.Hooks{
		Slot: func(slot hangul.Slot, value string) {
			fmt.Fprintf(out, "  %-9s %q\n", slot, value)
		},
		Preview: func(r rune, s string) {
			fmt.Fprintf(out, "preview   %q\n", s)
		},
		Emit: func(r rune, s string) {
			fmt.Fprintf(out, "emit      %q\n", s)
		},
		DeleteBack: func() {
			fmt.Fprintln(out, "delete-back")
		},
	}
}
