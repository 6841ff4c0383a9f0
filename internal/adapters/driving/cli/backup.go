package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import the whole index",
	Long: `Export every document, highlight, topic, and bookmark to a JSON or
YAML file, or replace the index with the contents of such a file.

Reading directions are not part of a backup and survive an import.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup",
	Args:  cobra.NoArgs,
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the index with a backup",
	Long: `Replace the index with the backup in file. Use "-" to read standard
input, which requires --yes.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

var (
	backupFormat string
	backupOutput string
	backupYes    bool
)

func init() {
	backupExportCmd.Flags().StringVarP(&backupFormat, "format", "f", "", "json or yaml (default from --output extension, else json)")
	backupExportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "Output file (default stdout)")
	backupImportCmd.Flags().StringVarP(&backupFormat, "format", "f", "", "json or yaml (default from file extension, else json)")
	backupImportCmd.Flags().BoolVarP(&backupYes, "yes", "y", false, "Replace without asking")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, _ []string) error {
	if backupService == nil {
		return errors.New("backup service not configured")
	}
	format, err := resolveBackupFormat(backupFormat, backupOutput)
	if err != nil {
		return err
	}

	snapshot, err := backupService.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if backupOutput == "" {
		return backupService.Encode(cmd.OutOrStdout(), snapshot, format)
	}

	f, err := os.Create(backupOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", backupOutput, err)
	}
	if err := backupService.Encode(f, snapshot, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	cmd.Printf("Exported %d documents, %d highlights, %d topics, %d bookmarks to %s\n",
		len(snapshot.PDFs), len(snapshot.Highlights), len(snapshot.Topics), len(snapshot.Bookmarks), backupOutput)
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	if backupService == nil {
		return errors.New("backup service not configured")
	}
	source := args[0]
	format, err := resolveBackupFormat(backupFormat, source)
	if err != nil {
		return err
	}

	var r io.Reader
	if source == "-" {
		if !backupYes {
			return errors.New("reading a backup from stdin requires --yes")
		}
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", source, err)
		}
		defer f.Close()
		r = f
	}

	snapshot, err := backupService.Decode(r, format)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	cmd.Printf("Backup holds %d documents, %d highlights, %d topics, %d bookmarks\n",
		len(snapshot.PDFs), len(snapshot.Highlights), len(snapshot.Topics), len(snapshot.Bookmarks))
	if !backupYes {
		ok, err := confirm(cmd, "Replace the current index?")
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := backupService.Import(cmd.Context(), snapshot); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	cmd.Println("Import complete.")
	return nil
}

// resolveBackupFormat picks the explicit format, else infers it from the
// file extension, else JSON.
func resolveBackupFormat(explicit, file string) (domain.BackupFormat, error) {
	if explicit != "" {
		format := domain.BackupFormat(strings.ToLower(explicit))
		if !format.IsValid() {
			return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, explicit)
		}
		return format, nil
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return domain.BackupFormatYAML, nil
	default:
		return domain.BackupFormatJSON, nil
	}
}
