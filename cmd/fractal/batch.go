package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/fractal"
)

// defaultParallel is the number of batch jobs rendered at once when the
// batch file and flags do not say.
const defaultParallel = 2

// batchFile is the YAML document read by the batch command.
//
//	parallel: 2
//	jobs:
//	  - name: seahorse
//	    region: seahorse-valley
//	    colored: true
//	  - name: cubic
//	    kind: newton
//	    roots: ["1", "-0.5+0.866i", "-0.5-0.866i"]
type batchFile struct {
	Parallel int   `yaml:"parallel"`
	Jobs     []Job `yaml:"jobs"`
}

// readBatch decodes a batch file, rejecting unknown keys. Every job starts
// from the defaults of its kind (see Job.UnmarshalYAML).
func readBatch(r io.Reader) (batchFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var b batchFile
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return b, errors.New("batch: empty file")
		}
		return b, fmt.Errorf("batch: %w", err)
	}
	if len(b.Jobs) == 0 {
		return b, errors.New("batch: no jobs")
	}

	outputs := make(map[string]int, len(b.Jobs))
	for i := range b.Jobs {
		j := b.Jobs[i]
		if j.Kind == "" {
			// A null entry is never handed to Job.UnmarshalYAML.
			j = j.withDefaults()
		}
		if err := j.validate(); err != nil {
			return b, fmt.Errorf("batch: job %d (%s): %w", i+1, j.label(), err)
		}
		out := filepath.Clean(j.Output)
		if prev, ok := outputs[out]; ok {
			return b, fmt.Errorf("batch: jobs %d and %d both write %s", prev+1, i+1, j.Output)
		}
		outputs[out] = i
		b.Jobs[i] = j
	}
	return b, nil
}

func loadBatch(path string) (batchFile, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return batchFile{}, fmt.Errorf("batch: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readBatch(f)
}

// runBatch renders jobs with at most parallel running at once. The first
// failure cancels the jobs that have not started yet.
func runBatch(ctx context.Context, jobs []Job, parallel int, log *slog.Logger, opts ...fractal.RenderOption) ([]Result, error) {
	if parallel < 1 {
		parallel = defaultParallel
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	results := make([]Result, len(jobs))
	for i, j := range jobs {
		g.Go(func() error {
			res, err := j.run(ctx, log, opts...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newBatchCmd(a *app) *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Render every job listed in a YAML file",
		Long: `Render every job listed in a YAML batch file. Each job takes the same keys as
the config file (kind, output, width, height, region, bounds, max_iters, horizon,
shades, colored, roots, roots_of_unity, color) plus a name; unset keys get the
defaults of the job's kind.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBatch(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("parallel") {
				b.Parallel = parallel
			}

			start := time.Now()
			results, err := runBatch(cmd.Context(), b.Jobs, b.Parallel, a.log, a.renderOptions()...)
			if err != nil {
				return err
			}

			var total int
			for _, r := range results {
				total += r.Bytes
				if _, err := fmt.Fprintln(a.out, r.summary()); err != nil {
					return err
				}
			}
			_, err = printer.Fprintf(a.out, "%d jobs, %d bytes in %v\n",
				len(results), total, time.Since(start).Round(time.Millisecond))
			return err
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", defaultParallel, "jobs rendered at once")
	return cmd
}
