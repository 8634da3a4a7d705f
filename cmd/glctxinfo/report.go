// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gioui.org/glctx"
	"gioui.org/glctx/internal/gl"
)

type row struct {
	label, value string
}

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(22).
			Align(lipgloss.Right).
			PaddingRight(2)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)
)

// contextRows describes the chosen config and the implementation behind
// the context.
func contextRows(ctx *glctx.Context, backend string, info gl.Info) []row {
	major, minor := ctx.Version()
	rows := []row{
		{"Backend", backend},
		{"Profile", ctx.Profile().String()},
		{"Requested version", fmt.Sprintf("%d.%d", major, minor)},
		{"State", ctx.State().String()},
	}
	if cfg, ok := ctx.Config(); ok {
		rows = append(rows, row{"Config", fmt.Sprintf("%#x", cfg.Native())})
		for _, a := range []struct {
			name string
			key  glctx.Attrib
		}{
			{"Red bits", glctx.AttrRedSize},
			{"Green bits", glctx.AttrGreenSize},
			{"Blue bits", glctx.AttrBlueSize},
			{"Alpha bits", glctx.AttrAlphaSize},
			{"Depth bits", glctx.AttrDepthSize},
			{"Stencil bits", glctx.AttrStencilSize},
		} {
			rows = append(rows, row{a.name, strconv.Itoa(ctx.QueryConfig(cfg, a.key))})
		}
	}
	if w, h, ok := ctx.Size(); ok {
		rows = append(rows, row{"Surface size", fmt.Sprintf("%dx%d", w, h)})
	}
	rows = append(rows,
		row{"GL vendor", info.Vendor},
		row{"GL renderer", info.Renderer},
		row{"GL version", info.Version},
	)
	if v, err := gl.ParseGLVersion(info.Version); err == nil {
		rows = append(rows, row{"Parsed version", v.String()})
	}
	rows = append(rows,
		row{"Shading language", info.Shading},
		row{"GL extensions", strconv.Itoa(len(info.Extensions))},
	)
	return rows
}

// writeReport prints rows as aligned label/value pairs, styled when the
// output is a terminal.
func writeReport(w io.Writer, title string, rows []row, styled bool) error {
	var b strings.Builder
	if styled {
		b.WriteString(headerStyle.Render(title))
		b.WriteByte('\n')
		for _, r := range rows {
			b.WriteString(labelStyle.Render(r.label) + valueStyle.Render(orNone(r.value)))
			b.WriteByte('\n')
		}
	} else {
		fmt.Fprintf(&b, "%s\n", title)
		for _, r := range rows {
			fmt.Fprintf(&b, "%-22s%s\n", r.label+":", orNone(r.value))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
