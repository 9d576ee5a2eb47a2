package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lessonforge/internal/script"
)

func newScriptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Manage cached episode scripts",
	}
	cmd.AddCommand(newScriptFetchCommand())
	cmd.AddCommand(newScriptShowCommand())
	return cmd
}

func addScriptKeyFlags(cmd *cobra.Command, key *script.Key) {
	cmd.Flags().StringVar(&key.ExternalID, "external-id", "", "External episode database id, e.g. tt0959621")
	cmd.Flags().IntVar(&key.Season, "season", 0, "Season number")
	cmd.Flags().IntVar(&key.Episode, "episode", 0, "Episode number")
	cmd.Flags().StringVar(&key.Language, "language", "", "Subtitle language (default from config)")
	_ = cmd.MarkFlagRequired("external-id")
}

func validateScriptKey(key script.Key) error {
	if key.Season < 1 || key.Episode < 1 {
		return fmt.Errorf("--season and --episode must be at least 1")
	}
	return nil
}

func newScriptFetchCommand() *cobra.Command {
	var key script.Key

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and store an episode script unless it is already stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateScriptKey(key); err != nil {
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

			text, err := components.Scripts.Fetch(ctx, key)
			if err != nil {
				return fmt.Errorf("failed to fetch script %s: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Script %s has %d characters\n", key, len(text))
			return nil
		},
	}
	addScriptKeyFlags(cmd, &key)
	return cmd
}

func newScriptShowCommand() *cobra.Command {
	var key script.Key

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a stored episode script",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateScriptKey(key); err != nil {
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

			stored, err := components.Scripts.Lookup(ctx, key)
			if err != nil {
				return fmt.Errorf("failed to look up script %s: %w", key, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored.ParsedText)
			return nil
		},
	}
	addScriptKeyFlags(cmd, &key)
	return cmd
}
