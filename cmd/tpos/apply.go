package main

import (
	"strings"
	"time"

	"github.com/steved/tpos/internal/output"
	"github.com/steved/tpos/internal/relativetime"
)

type applyCmd struct {
	commonFlags
	outputFlags

	At         time.Time `help:"Base time expression, e.g. '$Now' or 'YYYY-MM-DD HH:MM:SS'." required:"" placeholder:"expression"`
	Adjustment string    `arg:"" help:"Adjustment such as '+1M -1D'. Use -- before adjustments starting with '-'."`
}

func (cmd *applyCmd) Run() error {
	cmd.configureLogger()

	t, err := relativetime.ApplyAt(cmd.At, cmd.Adjustment)
	if err != nil {
		return err
	}

	return output.PrintRows([]output.Row{{
		Expression: cmd.Adjustment,
		Anchor:     cmd.At.Format("2006-01-02 15:04:05.000"),
		Adjustment: strings.ToUpper(strings.TrimSpace(cmd.Adjustment)),
		Time:       t,
	}}, cmd.Format)
}
