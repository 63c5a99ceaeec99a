package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/coursecms/coursesite/internal/config"
	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/export"
	"github.com/coursecms/coursesite/internal/publish"
	"github.com/coursecms/coursesite/internal/service"
)

func newExportCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the drafts into the baseline artifact",
		Long: `Render every draft slot into the initialData.ts baseline artifact.
Slots that were never written contribute their seed content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			artifact, err := export.Artifact(cmd.Context(), a.store)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(artifact)
				return err
			}

			if err := os.WriteFile(output, artifact, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", output, len(artifact))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", constants.ExportFileName, `output file, "-" for standard output`)
	return cmd
}

func newPublishCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Commit the drafts to the site repository",
		Long: `Render the drafts and commit them to the configured repository file.
Hosting settings come from the configuration file and GITHUB_* environment
variables, including those in a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is fine; the environment may already be set.
			_ = godotenv.Load()

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}

			svc := service.NewPublishService(a.store, publish.NewFromSettings(cfg.GitHub))
			if !svc.Configured() {
				return publish.ErrNotConfigured
			}

			outcome, err := svc.PublishDrafts(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", constants.MsgPublishFailed, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			return nil
		},
	}
}
