package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/zxhio/pinball/internal/model"
)

var statusColor = map[model.InterfaceStatus]func(format string, a ...interface{}) string{
	model.InterfaceStatusConfigured: color.GreenString,
	model.InterfaceStatusFailed:     color.RedString,
	model.InterfaceStatusSkipped:    color.YellowString,
}

func printOutcomes(w io.Writer, profile string, outcomes []model.InterfaceOutcome) {
	if len(outcomes) == 0 {
		fmt.Fprintf(w, "Profile %s has no network interfaces\n", profile)
		return
	}

	data := make([][]any, 0, len(outcomes))
	for _, o := range outcomes {
		status := string(o.Status)
		if c, ok := statusColor[o.Status]; ok {
			status = c("%s", status)
		}
		queues := o.Queues
		if queues == "" {
			queues = "-"
		}
		data = append(data, []any{o.Name, status, queues, o.IRQs, o.Error()})
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.SeparatorsNone,
				Lines:      tw.LinesNone,
			},
		})),
	)
	table.Header("Interface", "Status", "Queues", "IRQs", "Error")
	table.Bulk(data)
	table.Render()
}
