package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/scripts"
)

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slot>",
		Short: "Print the current document of a draft slot",
		Long: `Print the current document of a draft slot as indented JSON.
A slot that was never written prints its seed content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}

			doc, err := draftstore.Load(cmd.Context(), a.store, slot)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}

func newSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <slot> [file]",
		Short: "Replace a draft slot with a JSON document",
		Long: `Replace a draft slot with the JSON document read from file, or from
standard input when file is omitted or "-". The document must match the
slot's shape; a mismatch leaves the slot unchanged.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}

			var doc []byte
			if len(args) == 1 || args[1] == "-" {
				doc, err = io.ReadAll(cmd.InOrStdin())
			} else {
				doc, err = os.ReadFile(args[1])
			}
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}

			if err := draftstore.Replace(cmd.Context(), a.store, slot, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", slot)
			return nil
		},
	}
}

func newSeedCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write seed content into draft slots",
		Long: `Write the seed document of every slot that has no draft yet.
With --force every slot is reset to its seed, discarding existing drafts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := scripts.BaselineDocuments()
			if err != nil {
				return err
			}

			written := 0
			for _, slot := range models.AllSlots {
				if !force {
					_, found, err := a.backend.Read(cmd.Context(), slot)
					if err != nil {
						return err
					}
					if found {
						continue
					}
				}

				if err := a.store.SetRaw(cmd.Context(), slot, docs[slot]); err != nil {
					return err
				}
				written++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d of %d slots in %s\n", written, len(models.AllSlots), a.backend.Dir())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing drafts")
	return cmd
}
