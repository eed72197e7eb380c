package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskchainhq/taskchain/internal/cli/formatter"
)

func newTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show every project's chain in one flattened view",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Timeline.Timeline(context.Background())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("Nothing scheduled yet.")
				return nil
			}

			rows := make([]formatter.TimelineRow, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, formatter.TimelineRow{Project: e.Project, Task: e.Task})
			}
			fmt.Println(formatter.FormatTimeline(rows))
			return nil
		},
	}
}
