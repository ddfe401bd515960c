package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/steved/tpos/internal/output"
	"github.com/steved/tpos/internal/relativetime"
)

type seriesCmd struct {
	commonFlags
	outputFlags
	rangeFlags

	Step  string `help:"Adjustment applied between points, e.g. '+1d' or '+1M -1D'." required:""`
	Limit int    `help:"Maximum number of points." default:"1000"`
}

func (cmd *seriesCmd) Run() error {
	cmd.configureLogger()

	from, to, err := cmd.timeRange()
	if err != nil {
		return err
	}

	points, err := series(from, to, cmd.Step, cmd.Limit)
	if err != nil {
		return err
	}

	zlog.Debug().Int("points", len(points)).Str("step", cmd.Step).Msg("built series")

	step := strings.ToUpper(strings.TrimSpace(cmd.Step))
	rows := make([]output.Row, 0, len(points))
	for i, p := range points {
		rows = append(rows, output.Row{
			Name:       strconv.Itoa(i),
			Expression: cmd.From.String(),
			Anchor:     cmd.From.Anchor().String(),
			Adjustment: fmt.Sprintf("%s x%d", step, i),
			Time:       p,
		})
	}

	return output.PrintRows(rows, cmd.Format)
}

// series walks from from to to (inclusive) by repeatedly applying step to the
// previous point.
func series(from, to time.Time, step string, limit int) ([]time.Time, error) {
	if limit < 1 {
		return nil, fmt.Errorf("--limit must be at least 1")
	}

	points := []time.Time{from}
	for cur := from; ; {
		next, err := relativetime.ApplyAt(cur, step)
		if err != nil {
			return nil, fmt.Errorf("invalid --step: %w", err)
		}

		if !next.After(cur) {
			return nil, fmt.Errorf("--step %q does not move forward in time", step)
		}

		if next.After(to) {
			return points, nil
		}

		if len(points) == limit {
			return nil, fmt.Errorf("series has more than %d points", limit)
		}

		points = append(points, next)
		cur = next
	}
}
