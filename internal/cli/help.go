package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/pyprojectfmt/internal/ui/pretty"
)

// HelpStyles holds the styles used by the help and usage templates.
type HelpStyles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Name    lipgloss.Style
	Flag    lipgloss.Style
	Dim     lipgloss.Style
}

// NewHelpStyles returns colored styles, or plain ones when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Title: plain, Heading: plain, Name: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// helpRow is one aligned line of a help section.
type helpRow struct {
	name string
	kind string
	desc string
}

// HelpFormatter renders styled help output for cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ title .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ title .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}
{{ commands . }}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ environment }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ title (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ title .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}
{{with (or .Long .Short)}}
{{ trimRight . }}
{{end}}
`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"title":       h.styles.Title.Render,
		"heading":     h.styles.Heading.Render,
		"dim":         h.styles.Dim.Render,
		"commands":    h.commandRows,
		"flags":       h.flagRows,
		"environment": h.envRows,
		"trimRight":   func(s string) string { return strings.TrimRight(s, " \t\n") },
	}
}

func (h *HelpFormatter) commandRows(cmd *cobra.Command) string {
	cmds := lo.Filter(cmd.Commands(), func(c *cobra.Command, _ int) bool {
		return c.IsAvailableCommand() || c.Name() == "help"
	})
	return h.render(lo.Map(cmds, func(c *cobra.Command, _ int) helpRow {
		return helpRow{name: c.Name(), desc: c.Short}
	}), h.styles.Name)
}

func (h *HelpFormatter) flagRows(flags *pflag.FlagSet) string {
	var rows []helpRow
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "    --" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
		}
		kind, usage := pflag.UnquoteUsage(f)
		if showDefault(f) {
			usage += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		rows = append(rows, helpRow{name: name, kind: kind, desc: usage})
	})
	return h.render(rows, h.styles.Flag)
}

func (h *HelpFormatter) envRows() string {
	names, vars := sortedEnvVars()
	return h.render(lo.Map(names, func(name string, _ int) helpRow {
		return helpRow{name: name, desc: vars[name]}
	}), h.styles.Flag)
}

// render aligns rows into two columns, padding by display width so that
// styling escapes do not skew the layout.
func (h *HelpFormatter) render(rows []helpRow, nameStyle lipgloss.Style) string {
	label := func(r helpRow) string {
		if r.kind == "" {
			return r.name
		}
		return r.name + " " + r.kind
	}
	width := lo.Max(lo.Map(rows, func(r helpRow, _ int) int { return runewidth.StringWidth(label(r)) }))

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		styled := nameStyle.Render(r.name)
		if r.kind != "" {
			styled += " " + h.styles.Dim.Render(r.kind)
		}
		pad := strings.Repeat(" ", width-runewidth.StringWidth(label(r)))
		lines = append(lines, "  "+styled+pad+"   "+r.desc)
	}
	return strings.Join(lines, "\n")
}

func showDefault(f *pflag.Flag) bool {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return false
	}
	return f.NoOptDefVal == ""
}

// ApplyToCommand installs the styled help and usage functions on cmd. Child
// commands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return usage.Execute(c.OutOrStderr(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
			return
		}
		if err := usage.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}
