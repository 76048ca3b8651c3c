package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshaanmathakari/Datenschutz/internal/config"
	"github.com/eshaanmathakari/Datenschutz/internal/fix"
	"github.com/eshaanmathakari/Datenschutz/internal/logging"
	"github.com/eshaanmathakari/Datenschutz/internal/model"
	"github.com/spf13/viper"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "fix", Short: "Apply or undo suggested fixes"}
	cmd.AddCommand(newFixApplyCmd())
	cmd.AddCommand(newFixUndoCmd())
	return cmd
}

func newFixApplyCmd() *cobra.Command {
	var (
		resultsFile string
		issueID     string
	)
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the fix attached to an issue from a scan result file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitLogger(viper.GetBool("debug"))
			result, err := resultFromFile(resultsFile)
			if err != nil {
				return err
			}
			var issue *model.Issue
			for i := range result.Issues {
				if result.Issues[i].ID == issueID {
					issue = &result.Issues[i]
					break
				}
			}
			if issue == nil {
				return fmt.Errorf("issue %q not found in %s", issueID, resultsFile)
			}

			cfg, _, _ := config.Load(issue.FilePath)
			applier := fix.NewApplier(cfg.BackupDir, fix.NewLogStore(cfg.FixLogDir))
			res := applier.Apply(*issue)
			if !res.Applied {
				return fmt.Errorf("fix not applied: %s", res.Reason)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "status: applied")
			fmt.Fprintln(cmd.OutOrStdout(), res.Patch)
			return nil
		},
	}
	cmd.Flags().StringVar(&resultsFile, "results", "", "Scan result JSON file holding the issue")
	cmd.Flags().StringVar(&issueID, "issue", "", "Issue id to apply")
	_ = cmd.MarkFlagRequired("results")
	_ = cmd.MarkFlagRequired("issue")
	return cmd
}

func newFixUndoCmd() *cobra.Command {
	var filePath string
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore the most recent backup of a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitLogger(viper.GetBool("debug"))
			cfg, _, _ := config.Load(filePath)
			applier := fix.NewApplier(cfg.BackupDir, fix.NewLogStore(cfg.FixLogDir))
			res := applier.Undo(filePath)
			if !res.Applied {
				return fmt.Errorf("undo failed: %s", res.Reason)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Patch)
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "File to restore")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
