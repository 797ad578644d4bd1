package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	sb "nickandperla.net/sort_bench"
)

var reportFlags struct {
	db  string
	run uint
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a recorded benchmark run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := toolConfig.Persistence
		if cmd.Flags().Changed("db") || config == nil {
			config = &sb.PersistenceConfig{
				Path: filepath.Dir(reportFlags.db),
				Name: filepath.Base(reportFlags.db),
			}
		}
		persist, err := sb.NewPersistence(config)
		if err != nil {
			return err
		}
		defer persist.Shutdown()
		return printReport(cmd.OutOrStdout(), persist, reportFlags.run)
	},
}

func init() {
	flags := reportCmd.Flags()
	flags.StringVar(&reportFlags.db, "db", "sortbench.db", "SQLite file holding recorded runs")
	flags.UintVar(&reportFlags.run, "run", 0, "Run id to print (0 = latest)")
}

func printReport(out io.Writer, persist *sb.Persistence, id uint) error {
	var (
		run *sb.Run
		err error
	)
	if id == 0 {
		run, err = persist.LatestRun()
	} else {
		run, err = persist.LoadRun(id)
	}
	if err != nil {
		return err
	}

	status := "unfinished"
	if run.FinishedAt != nil {
		status = "finished " + run.FinishedAt.Format("2006-01-02 15:04:05")
	}
	fmt.Fprintf(out, "Run %d (%s): %s elements, seed %d, %d repeats, %s\n",
		run.ID, run.UUID, run.Element, run.Seed, run.Repeats, status)

	rows := sb.NewTableSink(out)
	for i := range run.Results {
		rows.Append(run.Results[i].Row())
	}
	if err := rows.Close(); err != nil {
		return err
	}

	fastest, err := persist.QueryFastest(run.ID)
	if err != nil {
		return err
	}
	if len(fastest) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nFastest per input:")
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Data Type", "Size", "Algorithm", "Avg (ms)"})
	for _, f := range fastest {
		table.Append([]string{f.Distribution, strconv.Itoa(f.Size), f.Algorithm, strconv.FormatFloat(f.AverageMs, 'f', 4, 64)})
	}
	table.Render()
	return nil
}
