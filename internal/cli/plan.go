package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewPlanCmd создаёт команду пересчёта расписания.
func NewPlanCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var file string
	var explain bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Recompute a schedule from a batch of documents",
		Long: `Plan отправляет пакет документов (workOrder, workCenter,
manufacturingOrder) на пересчёт и выводит изменившиеся задания.

Файл должен содержать JSON-массив документов:

  [{"docId": "...", "docType": "workOrder", "data": {...}}, ...]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}

			// Файл должен быть валидным JSON-массивом
			var documents json.RawMessage
			if err := json.Unmarshal(raw, &documents); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			result, err := client.ProcessReflow(documents)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Reflow completed: run %s, %d work orders, %d changes",
				result.RunID, len(result.UpdatedWorkOrders), len(result.Changes)))

			if out.jsonMode {
				out.JSON(result)
				return nil
			}

			headers := []string{"WORK_ORDER", "WORK_CENTER", "START", "END", "MAINTENANCE"}
			rows := make([][]string, len(result.UpdatedWorkOrders))
			for i, wo := range result.UpdatedWorkOrders {
				maintenance := ""
				if wo.IsMaintenance {
					maintenance = "yes"
				}
				rows[i] = []string{wo.WorkOrderNumber, wo.WorkCenterID, wo.StartDate, wo.EndDate, maintenance}
			}
			out.Table(headers, rows)

			if explain {
				out.Lines(result.Explanation)
			} else {
				out.Lines(result.Changes)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with documents (required)")
	cmd.Flags().BoolVar(&explain, "explain", false, "Print changes with reasons")
	cmd.MarkFlagRequired("file")

	return cmd
}
