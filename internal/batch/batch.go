package batch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/steved/tpos/internal/relativetime"
)

// Entry is a named expression. When At is set, Expr is an adjustment applied
// to the resolved At expression instead of a full expression.
type Entry struct {
	Name string                   `yaml:"name"`
	Expr string                   `yaml:"expr"`
	At   *relativetime.Expression `yaml:"at,omitempty"`
}

type file struct {
	Expressions []Entry `yaml:"expressions"`
}

// Result is the resolved time of a single entry.
type Result struct {
	Entry      Entry
	Expression *relativetime.Expression
	Time       time.Time
}

// ParseFile reads the entries of a batch file.
func ParseFile(filePath string) ([]Entry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", filePath, err)
	}

	return Parse(data)
}

// Parse decodes and validates batch entries from YAML.
func Parse(data []byte) ([]Entry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Expressions))
	for i, e := range f.Expressions {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: name is required", i+1)
		}
		if _, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("entry %d: duplicate name %q", i+1, e.Name)
		}
		seen[e.Name] = struct{}{}

		if strings.TrimSpace(e.Expr) == "" {
			return nil, fmt.Errorf("entry %q: expr is required", e.Name)
		}
	}

	return f.Expressions, nil
}

// Resolve resolves every entry with at most parallelism entries in flight.
// Results keep the order of entries.
func Resolve(ctx context.Context, entries []Entry, parallelism int) ([]Result, error) {
	if parallelism < 1 {
		return nil, fmt.Errorf("parallelism must be at least 1")
	}

	results := make([]Result, len(entries))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)

	for i, entry := range entries {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := resolveEntry(entry)
			if err != nil {
				return fmt.Errorf("entry %q: %w", entry.Name, err)
			}

			zlog.Debug().
				Str("name", entry.Name).
				Time("time", res.Time).
				Msg("resolved entry")

			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	zlog.Info().Int("entries", len(results)).Msg("resolved batch")

	return results, nil
}

func resolveEntry(entry Entry) (Result, error) {
	if entry.At != nil {
		base, err := entry.At.Resolve()
		if err != nil {
			return Result{}, err
		}

		t, err := relativetime.ApplyAt(base, entry.Expr)
		if err != nil {
			return Result{}, fmt.Errorf("applying %q: %w", entry.Expr, err)
		}

		return Result{Entry: entry, Time: t}, nil
	}

	expr, err := relativetime.Parse(entry.Expr)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %q: %w", entry.Expr, err)
	}

	t, err := expr.Resolve()
	if err != nil {
		return Result{}, err
	}

	return Result{Entry: entry, Expression: expr, Time: t}, nil
}
