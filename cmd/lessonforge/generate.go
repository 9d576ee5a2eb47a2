package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lessonforge/internal/job"
	"github.com/at-ishikawa/lessonforge/internal/pipeline"
)

func newGenerateCommand() *cobra.Command {
	var req pipeline.Request

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a lesson for one episode and wait for it to finish",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			components, err := newComponents(ctx, nil)
			if err != nil {
				return err
			}
			defer func() {
				_ = components.Close()
			}()

			jobID, err := components.Orchestrator.StartGeneration(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to start generation: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started job %s\n", jobID)

			if err := components.Orchestrator.Wait(ctx); err != nil {
				return fmt.Errorf("failed to wait for job %s: %w", jobID, err)
			}
			j, err := components.Orchestrator.GetStatus(ctx, jobID)
			if err != nil {
				return fmt.Errorf("failed to get job %s: %w", jobID, err)
			}
			printJob(cmd.OutOrStdout(), j)
			if j.Status == job.StatusFailed {
				return fmt.Errorf("generation failed: %s", j.ErrorMessage)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ShowID, "show-id", "", "Show id in the show catalog, resolved to an external id")
	cmd.Flags().StringVar(&req.ExternalID, "external-id", "", "External episode database id, e.g. tt0959621")
	cmd.Flags().IntVar(&req.Season, "season", 0, "Season number")
	cmd.Flags().IntVar(&req.Episode, "episode", 0, "Episode number")
	cmd.Flags().StringVar(&req.Language, "language", "", "Subtitle language (default from config)")
	cmd.Flags().StringVar(&req.Genre, "genre", "", "Genre hint for vocabulary extraction")
	cmd.Flags().StringVar(&req.Title, "title", "", "Episode title shown in the lesson")
	return cmd
}
