package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lessonforge/internal/job"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the status of a generation job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			components, err := newComponents(ctx, nil)
			if err != nil {
				return err
			}
			defer func() {
				_ = components.Close()
			}()

			j, err := components.Orchestrator.GetStatus(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get job %s: %w", args[0], err)
			}
			printJob(cmd.OutOrStdout(), j)
			return nil
		},
	}
}

func newJobsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent generation jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			ctx := cmd.Context()
			components, err := newComponents(ctx, nil)
			if err != nil {
				return err
			}
			defer func() {
				_ = components.Close()
			}()

			jobs, err := components.Orchestrator.ListJobs(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No jobs found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderJobs(jobs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of jobs to show")
	return cmd
}

func statusColor(s job.Status) *color.Color {
	switch s {
	case job.StatusCompleted:
		return color.New(color.FgGreen)
	case job.StatusFailed:
		return color.New(color.FgRed)
	case job.StatusProcessing:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func printJob(w io.Writer, j job.Job) {
	fmt.Fprintf(w, "Job:      %s\n", j.ID)
	fmt.Fprintf(w, "Status:   %s\n", statusColor(j.Status).Sprint(j.Status))
	fmt.Fprintf(w, "Progress: %d%%\n", j.Progress)
	fmt.Fprintf(w, "Step:     %s\n", j.CurrentStep)
	if j.ResultID != "" {
		fmt.Fprintf(w, "Lesson:   %s\n", j.ResultID)
	}
	if j.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:    %s\n", color.RedString(j.ErrorMessage))
	}
}

func renderJobs(jobs []job.Job) string {
	headers := []string{"ID", "Status", "Progress", "Step", "Created", "Lesson"}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{
			j.ID,
			string(j.Status),
			strconv.Itoa(j.Progress) + "%",
			j.CurrentStep,
			j.CreatedAt.Local().Format(time.DateTime),
			j.ResultID,
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}
