package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/steved/tpos/internal/batch"
	"github.com/steved/tpos/internal/output"
)

type batchCmd struct {
	commonFlags
	outputFlags

	File        string `arg:"" name:"file" help:"YAML file with a list of named expressions." type:"existingfile"`
	Parallelism int    `help:"Number of expressions resolved in parallel." default:"10"`
}

func (cmd *batchCmd) Run() error {
	cmd.configureLogger()

	if cmd.Parallelism < 1 {
		return fmt.Errorf("--parallelism must be at least 1")
	}

	entries, err := batch.ParseFile(cmd.File)
	if err != nil {
		return fmt.Errorf("parsing batch file: %w", err)
	}

	results, err := batch.Resolve(context.Background(), entries, cmd.Parallelism)
	if err != nil {
		return err
	}

	return output.PrintRows(batchRows(results), cmd.Format)
}

func batchRows(results []batch.Result) []output.Row {
	rows := make([]output.Row, 0, len(results))
	for _, res := range results {
		if res.Expression != nil {
			rows = append(rows, expressionRow(res.Entry.Name, res.Expression, res.Time))
			continue
		}

		rows = append(rows, output.Row{
			Name:       res.Entry.Name,
			Expression: res.Entry.Expr,
			Anchor:     res.Entry.At.String(),
			Adjustment: strings.ToUpper(strings.TrimSpace(res.Entry.Expr)),
			Time:       res.Time,
		})
	}
	return rows
}
