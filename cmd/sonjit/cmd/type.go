package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"sonjit/internal/config"
	"sonjit/internal/engine"
	"sonjit/internal/layout"
	"sonjit/internal/textbuf"
)

var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Compose Hangul from the keyboard",
	Long: `Read keys from the terminal and compose them through the layout.
Tab takes the first suggestion, Enter prints the line, Esc or Ctrl-C quits.`,
	Args: cobra.NoArgs,
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
}

func loadLayout(cfg config.Config) (*layout.Layout, error) {
	keys, err := layout.Load(cfg.Layout.Name)
	if err != nil {
		return nil, err
	}
	if cfg.Layout.Custom == "" {
		return keys, nil
	}
	pairs, err := layout.LoadCustomPairs(cfg.Layout.Custom)
	if err != nil {
		return nil, err
	}
	if err := layout.ApplyCustomPairs(keys, pairs); err != nil {
		return nil, err
	}
	return keys, nil
}

func runType(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings()
	if err != nil {
		return err
	}
	keys, err := loadLayout(cfg)
	if err != nil {
		return err
	}
	buf := textbuf.New(cfg.Text.MaxBytes)
	eng, err := newEngine(cfg, log, buf)
	if err != nil {
		return err
	}

	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	out := cmd.OutOrStdout()
	screen := &statusLine{out: out}
	screen.draw(eng)
	for {
		ch, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		switch key {
		case keyboard.KeyEsc, keyboard.KeyCtrlC:
			eng.Commit()
			screen.draw(eng)
			fmt.Fprint(out, "\r\n")
			return nil
		case keyboard.KeyEnter:
			eng.Commit()
			screen.draw(eng)
			fmt.Fprint(out, "\r\n")
			eng.Clear()
			screen.width = 0
		case keyboard.KeyBackspace, keyboard.KeyBackspace2:
			eng.Backspace()
		case keyboard.KeySpace:
			eng.Space()
		case keyboard.KeyTab:
			eng.Pick(0)
		default:
			if ch == 0 {
				continue
			}
			feedKey(eng, keys, ch)
		}
		screen.draw(eng)
	}
}

func feedKey(eng *engine.Engine, keys *layout.Layout, ch rune) {
	sym := keys.Translate(ch)
	if sym == nil {
		eng.AddString(string(ch))
		return
	}
	switch sym.Kind {
	case layout.SymbolJamo:
		eng.TypeJamo(sym.Jamo)
	case layout.SymbolText:
		eng.AddString(sym.Text)
	case layout.SymbolPassthrough:
		if sym.CommitBefore {
			eng.Commit()
		}
	}
}

// statusLine redraws the current line in place, padding over whatever the
// previous draw left behind.
type statusLine struct {
	out   io.Writer
	width int
}

func (s *statusLine) draw(eng *engine.Engine) {
	line := eng.Text()
	if sugg := eng.Suggestions(); len(sugg) > 0 {
		line += "   [" + strings.Join(sugg, " ") + "]"
	}
	w := runewidth.StringWidth(line)
	if w < s.width {
		line = runewidth.FillRight(line, s.width)
	}
	s.width = w
	fmt.Fprint(s.out, "\r"+line)
}
