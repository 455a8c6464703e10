package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/1broseidon/winomove/internal/platform"
	"github.com/1broseidon/winomove/internal/topology"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newDisplaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "displays",
		Short: "List displays in left-to-right order",
		Long: `List the live displays in the order winomove walks them. The first row
is the leftmost display; Win+Shift+Right moves one row down.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := platform.Open()
			if err != nil {
				return fmt.Errorf("failed to open window system: %w", err)
			}
			defer backend.Close()

			displays, err := backend.Displays()
			if err != nil {
				return fmt.Errorf("failed to list displays: %w", err)
			}
			return printDisplays(cmd.OutOrStdout(), displays)
		},
	}
}

func printDisplays(w io.Writer, displays []platform.Display) error {
	if len(displays) == 0 {
		_, err := fmt.Fprintln(w, "No displays found")
		return err
	}

	rows := make([][]string, 0, len(displays))
	for i, d := range topology.Ordered(displays) {
		rows = append(rows, []string{
			strconv.Itoa(i),
			d.Name,
			strconv.Itoa(d.Bounds.X),
			strconv.Itoa(d.Bounds.Y),
			strconv.Itoa(d.Bounds.Right()),
			strconv.Itoa(d.Bounds.Bottom()),
			fmt.Sprintf("%dx%d", d.Bounds.Width, d.Bounds.Height),
		})
	}

	re := lipgloss.NewRenderer(w)
	cellStyle := re.NewStyle().Padding(0, 1)
	headerStyle := cellStyle.Bold(true)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "NAME", "LEFT", "TOP", "RIGHT", "BOTTOM", "SIZE").
		Rows(rows...)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})

	_, err := fmt.Fprintln(w, t)
	return err
}
