package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mealie-tools/mealie-api/packages/core/config"
	"github.com/mealie-tools/mealie-api/packages/history"
	"github.com/mealie-tools/mealie-api/packages/output"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent API invocations",
	Long: `List recent API invocations recorded in the local history database,
newest first. Recording happens automatically on every call unless
--no-history is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if fileCfg, err := config.FindConfigFile(); err == nil {
			path = fileCfg.HistoryPath
		}
		if path == "" {
			var err error
			if path, err = history.DefaultPath(); err != nil {
				return err
			}
		}

		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(historyLimitFlag)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recorded invocations yet.")
			return nil
		}

		style := output.NewStyle(noColorFlag)
		for _, e := range entries {
			status := style.Success(fmt.Sprintf("%d", e.StatusCode))
			if e.StatusCode < 200 || e.StatusCode >= 300 {
				status = style.Error(fmt.Sprintf("%d", e.StatusCode))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-6s %s  %s (%dms)\n",
				e.Time.Format("2006-01-02 15:04:05"), e.Method, status, e.URL, e.DurationMs)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Number of entries to show")
}
