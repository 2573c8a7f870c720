package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// RefsRenderer renders the reference table grouped by network
type RefsRenderer struct {
	out io.Writer
}

// NewRefsRenderer creates a new refs renderer
func NewRefsRenderer(out io.Writer) *RefsRenderer {
	return &RefsRenderer{out: out}
}

// RenderRefList renders the recorded refs, one table per network.
func (r *RefsRenderer) RenderRefList(result *usecase.ListRefsResult) error {
	if len(result.Rows) == 0 {
		fmt.Fprintln(r.out, "No refs recorded")
		return nil
	}

	titleCaser := cases.Title(language.English)

	current := ""
	var t table.Writer
	for _, row := range result.Rows {
		if row.Network != current {
			if t != nil {
				t.Render()
				fmt.Fprintln(r.out)
			}
			current = row.Network
			color.New(color.Bold, color.FgHiWhite).Fprintf(r.out, "%s\n", titleCaser.String(current))

			t = table.NewWriter()
			t.SetOutputMirror(r.out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Contract", "Code ID", "Address"})
		}

		codeID := row.CodeID
		if codeID == "" {
			codeID = "-"
		}
		address := row.Address
		if address == "" {
			address = "-"
		}
		t.AppendRow(table.Row{row.Contract, codeID, address})
	}
	if t != nil {
		t.Render()
	}

	return nil
}
