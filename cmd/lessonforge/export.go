package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lessonforge/internal/config"
	"github.com/at-ishikawa/lessonforge/internal/lesson"
)

func newExportCommand() *cobra.Command {
	format := lesson.FormatMarkdown
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export <lesson-id>",
		Short: "Export a stored lesson to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			components, err := newComponents(ctx, func(cfg *config.Config) {
				if outputDir != "" {
					cfg.Outputs.LessonDirectory = outputDir
				}
			})
			if err != nil {
				return err
			}
			defer func() {
				_ = components.Close()
			}()

			l, err := components.Lessons.FindByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to find lesson %s: %w", args[0], err)
			}
			path, err := components.Exporter.Export(l, format)
			if err != nil {
				return fmt.Errorf("failed to export lesson %s: %w", l.ID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported lesson to %s\n", path)
			return nil
		},
	}

	cmd.Flags().Var(&format, "format", "Output format: markdown, pdf, yaml or json")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for exported files (default from config)")
	return cmd
}

func newLessonsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "List generated lessons",
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

			summaries, err := components.Lessons.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list lessons: %w", err)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lessons found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLessons(summaries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of lessons to show")
	return cmd
}

func renderLessons(summaries []lesson.Summary) string {
	headers := []string{"ID", "Episode", "Title", "Points", "High quality", "Created"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ID,
			fmt.Sprintf("%s S%02dE%02d", s.Source.ExternalID, s.Source.Season, s.Source.Episode),
			s.Source.Title,
			strconv.Itoa(s.TotalPoints),
			strconv.FormatBool(s.HighQuality),
			s.CreatedAt.Local().Format(time.DateTime),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight})
}
