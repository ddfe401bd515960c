package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/steved/tpos/internal/output"
	"github.com/steved/tpos/internal/relativetime"
)

type commonFlags struct {
	Verbose bool `help:"Enable debug logging." short:"v"`
}

func (c *commonFlags) configureLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if c.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

type outputFlags struct {
	Format output.Format `help:"Output format (table or json)." enum:"table,json" default:"table"`
}

type rangeFlags struct {
	From *relativetime.Expression `help:"Start of the range, e.g. '$CurrentDay -1d' or 'YYYY-MM-DD HH:MM:SS'." required:"" placeholder:"expression"`
	To   *relativetime.Expression `help:"End of the range. Defaults to '$NOW'." placeholder:"expression"`
}

func (r *rangeFlags) timeRange() (time.Time, time.Time, error) {
	to := r.To
	if to == nil {
		to = relativetime.MustParse("$NOW")
	}

	fromTime, err := r.From.Resolve()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from time: %w", err)
	}

	toTime, err := to.Resolve()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --to time: %w", err)
	}

	if !fromTime.Before(toTime) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from must be before --to")
	}

	return fromTime, toTime, nil
}

func expressionRow(name string, expr *relativetime.Expression, t time.Time) output.Row {
	return output.Row{
		Name:       name,
		Expression: expr.String(),
		Anchor:     expr.Anchor().String(),
		Adjustment: strings.TrimSpace(expr.Adjustment()),
		Time:       t,
	}
}

type cli struct {
	Resolve resolveCmd `cmd:"" help:"Resolve time position expressions." default:"withargs"`
	Apply   applyCmd   `cmd:"" help:"Apply an adjustment to a base time."`
	Series  seriesCmd  `cmd:"" help:"List the points between two expressions, stepping by an adjustment."`
	Batch   batchCmd   `cmd:"" help:"Resolve the named expressions of a YAML file."`
	Window  windowCmd  `cmd:"" help:"Print a dashboard link for the window between two expressions."`
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("tpos"),
		kong.Description("Resolve time position expressions such as '$CurrentMonth -1m' or '2018-07-28 03:24:23 +1d'."),
		kong.UsageOnError(),
		kong.TypeMapper(reflect.TypeFor[time.Time](), relativetime.Mapper),
		kong.TypeMapper(reflect.TypeFor[*relativetime.Expression](), relativetime.ExpressionMapper),
	}
}

func main() {
	root := cli{}
	ctx := kong.Parse(&root, options()...)

	ctx.FatalIfErrorf(ctx.Run())
}
