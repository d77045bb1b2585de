package main

import (
	"fmt"
	"time"

	"imgtransform/internal/batch"
	"imgtransform/internal/processing/filters"
	"imgtransform/internal/workspace"

	"github.com/spf13/cobra"
)

func newFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Print the available filters in menu order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, f := range filters.All() {
				fmt.Fprintf(out, "%-18s %s\n", f.Slug(), f)
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list DIR",
		Short: "Print the image files of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := workspace.List(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range files {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newApplyCmd(c *cli) *cobra.Command {
	var (
		names   []string
		files   []string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "apply DIR",
		Short: "Apply filters to the images of DIR and write them to DIR/Modified",
		Example: "  imgtransform apply ./photos --filter left --filter sharp\n" +
			"  imgtransform apply ./photos --filter bw --file cat.png --workers 2",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := make([]filters.Filter, 0, len(names))
			for _, name := range names {
				f, err := filters.Parse(name)
				if err != nil {
					return err
				}
				chain = append(chain, f)
			}

			if !cmd.Flags().Changed("workers") {
				workers = c.cfg.Workers
			}

			engine, err := c.engineFor()
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			start := time.Now()
			report, err := batch.Run(ctx, engine, c.logger, batch.Job{
				Dir:     args[0],
				Files:   files,
				Filters: chain,
				Workers: workers,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range report.Results {
				if res.Err != nil {
					fmt.Fprintf(out, "FAIL %s: %v\n", res.File, res.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %s -> %s (%s)\n", res.File, res.Output, res.Duration.Round(time.Millisecond))
			}
			for _, st := range report.Timings {
				fmt.Fprintf(out, "     %-18s x%-4d avg %s\n", st.Operation, st.Count, st.Average().Round(time.Microsecond))
			}
			fmt.Fprintf(out, "%d files, %d failed, %s\n",
				len(report.Results), len(report.Failed()), time.Since(start).Round(time.Millisecond))

			return report.Err()
		},
	}

	cmd.Flags().StringArrayVarP(&names, "filter", "f", nil, "filter to apply, repeatable, applied in order")
	cmd.Flags().StringSliceVar(&files, "file", nil, "only process these files of DIR")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent files (default from IMGTRANSFORM_WORKERS or CPU count)")
	_ = cmd.MarkFlagRequired("filter")

	return cmd
}
