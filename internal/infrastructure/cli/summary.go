package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/repocat/pkg/application"
	"github.com/felixgeelhaar/repocat/pkg/domain/catalog"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func summaryRows(res *catalog.Result) []table.Row {
	var rows []table.Row
	add := func(group string, g *catalog.Groups) {
		for _, category := range g.Categories() {
			rows = append(rows, table.Row{group, category, strconv.Itoa(len(g.Get(category)))})
		}
	}
	add("cloudformation", res.CloudFormation)
	add("terraform", res.Terraform)
	rows = append(rows, table.Row{"in-progress", "-", strconv.Itoa(len(res.InProgress))})
	return rows
}

func renderSummaryTable(res *catalog.Result) string {
	rows := summaryRows(res)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Group", Width: 16},
			{Title: "Category", Width: 28},
			{Title: "Repos", Width: 6},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+3),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}

func printRunSummary(w io.Writer, run *application.Run) {
	title := fmt.Sprintf("Repositories for %s: %d", run.Org, len(run.Records))
	if run.Org == "" {
		title = fmt.Sprintf("Repositories in snapshot: %d", len(run.Records))
	}
	fmt.Fprintln(w, headingStyle.Render(title))
	if run.Partial() {
		fmt.Fprintln(w, warnStyle.Render("Listing ended early, results are partial: "+run.FetchErr.Error()))
	}
	fmt.Fprintln(w, renderSummaryTable(run.Result))

	for _, o := range run.Outputs {
		if o.Err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", errStyle.Render("✗"), o.File, o.Err)
			continue
		}
		fmt.Fprintf(w, "%s %s (%d)\n", okStyle.Render("✓"), o.Path, o.Count)
	}
}
