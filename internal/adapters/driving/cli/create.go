package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

var (
	artworkDraft domain.ArtworkDraft
	zoneDraft    domain.ZoneDraft
	createExtra  []string
)

var itemCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new obra or zona",
}

var itemCreateObraCmd = &cobra.Command{
	Use:   "obra",
	Short: "Create a new obra",
	Long: `Creates an obra. --titulo, --artista, --zona and --descripcion are required.

Example:
  curio item create obra --titulo "Venus" --artista "Anónimo" --zona "Sala 1" \
    --descripcion "Escultura en mármol" --extra procedencia=donación`,
	Args: cobra.NoArgs,
	RunE: runItemCreateObra,
}

var itemCreateZonaCmd = &cobra.Command{
	Use:   "zona",
	Short: "Create a new zona",
	Long:  `Creates a zona. --nombre and --descripcion are required.`,
	Args:  cobra.NoArgs,
	RunE:  runItemCreateZona,
}

func init() {
	f := itemCreateObraCmd.Flags()
	f.StringVar(&artworkDraft.Title, "titulo", "", "title")
	f.StringVar(&artworkDraft.Artist, "artista", "", "artist")
	f.StringVar(&artworkDraft.Zone, "zona", "", "zone")
	f.StringVar(&artworkDraft.Description, "descripcion", "", "description")
	f.StringVar(&artworkDraft.Technique, "tecnica", "", "technique")
	f.StringVar(&artworkDraft.Year, "anio", "", "year")
	f.StringVar(&artworkDraft.Dimensions, "dimensiones", "", "dimensions")
	f.StringVar(&artworkDraft.Materials, "materiales", "", "materials")
	f.StringVar(&artworkDraft.Style, "estilo", "", "style")
	f.StringVar(&artworkDraft.Period, "periodo", "", "historical period")
	f.StringVar(&artworkDraft.Significance, "significado", "", "cultural significance")
	f.StringVar(&artworkDraft.Condition, "estado", "", "conservation state")
	f.StringVar(&artworkDraft.Location, "ubicacion", "", "physical location")
	f.StringVar(&artworkDraft.EstimatedPrice, "precio", "", "estimated price")
	f.StringArrayVar(&createExtra, "extra", nil, "additional field as key=value (repeatable)")

	f = itemCreateZonaCmd.Flags()
	f.StringVar(&zoneDraft.Name, "nombre", "", "name")
	f.StringVar(&zoneDraft.Description, "descripcion", "", "description")
	f.StringVar(&zoneDraft.Period, "periodo", "", "period")
	f.StringVar(&zoneDraft.Theme, "tematica", "", "theme")
	f.StringVar(&zoneDraft.Features, "caracteristicas", "", "features")
	f.StringArrayVar(&createExtra, "extra", nil, "additional field as key=value (repeatable)")

	itemCreateCmd.AddCommand(itemCreateObraCmd)
	itemCreateCmd.AddCommand(itemCreateZonaCmd)
	itemCmd.AddCommand(itemCreateCmd)
}

func runItemCreateObra(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	draft := artworkDraft
	extra, err := parseExtra(createExtra)
	if err != nil {
		return err
	}
	draft.Extra = extra

	if err := collectionService.CreateArtwork(context.Background(), draft); err != nil {
		return fmt.Errorf("failed to create obra: %w", err)
	}

	cmd.Printf("Obra %q creada.\n", draft.Title)
	return nil
}

func runItemCreateZona(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	draft := zoneDraft
	extra, err := parseExtra(createExtra)
	if err != nil {
		return err
	}
	draft.Extra = extra

	if err := collectionService.CreateZone(context.Background(), draft); err != nil {
		return fmt.Errorf("failed to create zona: %w", err)
	}

	cmd.Printf("Zona %q creada.\n", draft.Name)
	return nil
}

// parseExtra turns repeated key=value flags into metadata_adicional.
func parseExtra(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: --extra %q must be key=value", domain.ErrInvalidInput, pair)
		}
		extra[key] = strings.TrimSpace(value)
	}
	return extra, nil
}
