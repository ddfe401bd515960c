package main

import (
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/steved/tpos/internal/output"
	"github.com/steved/tpos/internal/relativetime"
)

type resolveCmd struct {
	commonFlags
	outputFlags

	Expressions []string `arg:"" name:"expression" help:"Expressions to resolve." required:""`
}

func (cmd *resolveCmd) Run() error {
	cmd.configureLogger()

	rows := make([]output.Row, 0, len(cmd.Expressions))
	for _, s := range cmd.Expressions {
		expr, err := relativetime.Parse(s)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", s, err)
		}

		zlog.Debug().
			Stringer("anchor", expr.Anchor()).
			Str("adjustment", expr.Adjustment()).
			Msg("parsed expression")

		t, err := expr.Resolve()
		if err != nil {
			return err
		}

		rows = append(rows, expressionRow("", expr, t))
	}

	return output.PrintRows(rows, cmd.Format)
}
