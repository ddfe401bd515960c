package main

import (
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/steved/tpos/internal/dashboard"
)

type windowCmd struct {
	commonFlags
	rangeFlags

	Query     string         `arg:"" help:"Query to open in the dashboard."`
	Dashboard dashboard.Type `help:"Dashboard UI (prometheus, vmui or grafana)." enum:"prometheus,vmui,grafana" default:"grafana"`
	URL       string         `name:"url" help:"Dashboard explore URL." required:""`
}

func (cmd *windowCmd) Run() error {
	cmd.configureLogger()

	if err := dashboard.ValidateQuery(cmd.Query); err != nil {
		return err
	}

	from, to, err := cmd.timeRange()
	if err != nil {
		return err
	}

	w, err := dashboard.NewWindow(from, to)
	if err != nil {
		return err
	}

	linker, err := dashboard.New(cmd.Dashboard, cmd.URL)
	if err != nil {
		return fmt.Errorf("creating dashboard link: %w", err)
	}

	zlog.Debug().
		Time("from", w.From).
		Time("to", w.To).
		Str("range", w.Range()).
		Msg("resolved window")

	fmt.Println(linker.URL(cmd.Query, w))
	return nil
}
