package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ration/internal/adapters/driven/dataset"
	"github.com/custodia-labs/ration/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/services"
)

var (
	importFormat     string
	importMatchField string
	importListPath   string
	importDB         string
	importActivate   bool
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage the food dataset",
}

var datasetImportCmd = &cobra.Command{
	Use:   "import [source.json]",
	Short: "Import a JSON food dataset into SQLite",
	Long: `Reads every record of a JSON dataset (array, NDJSON or a document with a
nested list) and replaces the contents of a SQLite dataset with them.
The searched name is extracted at import time with --match-field.

Use --activate to make the imported database the configured dataset.`,
	Example: `  ration dataset import food.json
  ration dataset import FoodData_Central_branded.json --format document --list-path BrandedFoods --activate`,
	Args: cobra.ExactArgs(1),
	RunE: runDatasetImport,
}

func init() {
	datasetImportCmd.Flags().StringVar(&importFormat, "format", string(domain.DatasetFormatArray), "source format: array or document")
	datasetImportCmd.Flags().StringVar(&importMatchField, "match-field", "", "JSON path of the food name (default depends on format)")
	datasetImportCmd.Flags().StringVar(&importListPath, "list-path", domain.DefaultDocumentList, "JSON path of the record list (document format)")
	datasetImportCmd.Flags().StringVar(&importDB, "db", "", "destination database (default ~/.ration/data/foods.db)")
	datasetImportCmd.Flags().BoolVar(&importActivate, "activate", false, "configure the database as the active dataset")
	datasetCmd.AddCommand(datasetImportCmd)
	rootCmd.AddCommand(datasetCmd)
}

func runDatasetImport(cmd *cobra.Command, args []string) error {
	format := domain.DatasetFormat(importFormat)
	matchField := importMatchField
	if matchField == "" {
		matchField = format.DefaultMatchField()
	}

	src, err := dataset.NewSource(domain.DatasetSettings{
		Path:       args[0],
		Format:     format,
		MatchField: matchField,
		ListPath:   importListPath,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	dest := importDB
	if dest == "" {
		if dest, err = sqlite.DefaultPath(); err != nil {
			return fmt.Errorf("resolving database path: %w", err)
		}
	}

	store, err := sqlite.NewStore(dest)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dest, err)
	}
	defer store.Close()

	stats, err := store.Import(cmd.Context(), src)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("%s %d foods into %s\n", headingStyle.Render("Imported"), stats.Imported, dest)
	if stats.Source.ErrorsEncountered > 0 {
		cmd.Println(warnStyle.Render(fmt.Sprintf("Skipped %d malformed entries.", stats.Source.ErrorsEncountered)))
	}

	if importActivate {
		return activateDataset(cmd, dest)
	}
	return nil
}

func activateDataset(cmd *cobra.Command, path string) error {
	if app == nil || app.Settings == nil {
		return errors.New("settings service not configured")
	}
	if err := app.Settings.Set(services.KeyDatasetFormat, string(domain.DatasetFormatSQLite)); err != nil {
		return err
	}
	if err := app.Settings.Set(services.KeyDatasetPath, path); err != nil {
		return err
	}
	cmd.Printf("Active dataset set to %s\n", path)
	return nil
}
