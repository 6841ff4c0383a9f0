package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report dangling references in the index",
	Long: `Check that every highlight, bookmark, topic parent, and the last
opened pointer reference records that exist. Nothing is changed.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

var (
	auditJSON   bool
	auditStrict bool
)

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Print the report as JSON")
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "Fail when gaps are found")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, _ []string) error {
	if integrityService == nil {
		return errors.New("integrity service not configured")
	}

	report, err := integrityService.Audit(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to audit: %w", err)
	}

	if auditJSON {
		if err := printJSON(cmd, report); err != nil {
			return err
		}
	} else {
		cmd.Printf("Checked %d documents, %d highlights, %d topics, %d bookmarks\n",
			report.Documents, report.Highlights, report.Topics, report.Bookmarks)
		if report.OK() {
			cmd.Println("No problems found.")
		} else {
			cmd.Printf("\n%d problem(s):\n", len(report.Gaps))
			for _, g := range report.Gaps {
				cmd.Printf("  - %s\n", g)
			}
		}
	}

	if auditStrict && !report.OK() {
		return fmt.Errorf("%d referential gap(s) found", len(report.Gaps))
	}
	return nil
}
