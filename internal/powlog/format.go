package powlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var levelColor = map[Lvl]*color.Color{
	LvlCrit:  color.New(color.FgMagenta, color.Bold),
	LvlError: color.New(color.FgRed),
	LvlWarn:  color.New(color.FgYellow),
	LvlInfo:  color.New(color.FgGreen),
	LvlDebug: color.New(color.FgCyan),
	LvlTrace: color.New(color.FgWhite),
}

// TerminalFormat renders records for an interactive terminal:
// `LVL[timestamp] msg key=value ...`, colorized when attached to a tty.
// Uses go-colorable so Windows consoles without native ANSI support still
// render color.
func TerminalFormat() Format {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return &terminalFormat{color: useColor}
}

type terminalFormat struct {
	color bool
}

func (f *terminalFormat) Format(r *Record) []byte {
	var b strings.Builder
	lvl := r.Lvl.String()
	if f.color {
		lvl = levelColor[r.Lvl].Sprint(strings.ToUpper(lvl))
	} else {
		lvl = strings.ToUpper(lvl)
	}
	fmt.Fprintf(&b, "%s[%s] %s", lvl, r.Time.Format("01-02|15:04:05.000"), r.Msg)
	for i := 0; i+1 < len(r.Ctx); i += 2 {
		fmt.Fprintf(&b, " %v=%v", r.Ctx[i], r.Ctx[i+1])
	}
	if r.Call.Frame().Function != "" {
		fmt.Fprintf(&b, " caller=%s", r.Call)
	}
	b.WriteByte('\n')
	return []byte(b.String())
}
