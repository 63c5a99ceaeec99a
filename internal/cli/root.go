// Package cli implements sitectl, the command-line companion of the course
// site backend. It works directly against the file draft store, so content
// can be inspected, edited, exported and published without the API server.
//
// Configuration:
//
//	--dir     Draft directory (default ./data/drafts, or DRAFTS_DIR)
//	--config  YAML configuration file used by publish for the hosting settings
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/models"
)

// app carries the state shared by every subcommand.
type app struct {
	draftDir   string
	configPath string
	logLevel   string

	backend *draftstore.FileBackend
	store   *draftstore.Store
}

// NewRootCommand builds the sitectl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sitectl",
		Short: "Inspect, edit, export and publish course site drafts",
		Long: `sitectl operates on the file draft store used by the course site backend.

Examples:
  sitectl get siteSettings              # Print one draft slot
  sitectl set courseFaqs faqs.json      # Replace a slot from a file
  sitectl seed                          # Write seed content for missing slots
  sitectl export -o initialData.ts      # Render the baseline artifact
  sitectl publish --config config.yaml  # Commit the drafts to the site repository`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
	}

	defaultDir := os.Getenv("DRAFTS_DIR")
	if defaultDir == "" {
		defaultDir = constants.DefaultDraftDir
	}

	root.PersistentFlags().StringVar(&a.draftDir, "dir", defaultDir, "draft directory")
	root.PersistentFlags().StringVar(&a.configPath, "config", "./configs/config.yaml", "path to configuration file")
	root.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newGetCommand(a),
		newSetCommand(a),
		newSeedCommand(a),
		newExportCommand(a),
		newPublishCommand(a),
	)

	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// open configures logging and opens the draft store.
func (a *app) open(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.logLevel, err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().Timestamp().Logger()

	a.backend = draftstore.NewFileBackend(a.draftDir)
	a.store = draftstore.New(a.backend)
	return nil
}

// parseSlot validates a slot argument.
func parseSlot(arg string) (models.SlotName, error) {
	slot := models.SlotName(arg)
	if !slot.IsValid() {
		return "", fmt.Errorf("%w: %s (expected one of %v)", draftstore.ErrUnknownSlot, arg, models.AllSlots)
	}
	return slot, nil
}
