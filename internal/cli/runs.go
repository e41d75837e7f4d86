package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewRunsCmd создаёт группу команд для истории пересчётов.
func NewRunsCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect reflow history",
	}

	cmd.AddCommand(
		newRunsListCmd(clientFn, outputFn),
		newRunsShowCmd(clientFn, outputFn),
	)

	return cmd
}

func newRunsListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reflow runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			runs, err := client.ListRuns(ListRunsOpts{
				Status: status,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			headers := []string{"ID", "STATUS", "DOCUMENTS", "WORK_ORDERS", "CHANGES", "CREATED"}
			rows := make([][]string, len(runs))
			for i, r := range runs {
				rows[i] = []string{
					r.ID,
					r.Status,
					strconv.Itoa(r.DocumentCount),
					strconv.Itoa(r.WorkOrderCount),
					strconv.Itoa(r.ChangeCount),
					r.CreatedAt,
				}
			}

			out.Print(headers, rows, runs)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (SUCCEEDED, FAILED)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")

	return cmd
}

func newRunsShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show reflow run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			run, err := client.GetRun(args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"ID", "STATUS", "DOCUMENTS", "WORK_ORDERS", "CHANGES", "ERROR", "CREATED"},
				[][]string{{
					run.ID,
					run.Status,
					strconv.Itoa(run.DocumentCount),
					strconv.Itoa(run.WorkOrderCount),
					strconv.Itoa(run.ChangeCount),
					run.Error,
					run.CreatedAt,
				}},
				run,
			)
			return nil
		},
	}
}
