package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"pafinder/internal/program"
	"pafinder/internal/selection"
)

// DetailMarkdown renders one program as a markdown document: a header with
// location and accreditation, then Program Details, Performance,
// Requirements, Experience and Features sections.
func DetailMarkdown(p program.Program) string {
	var sb strings.Builder

	sb.WriteString("# " + mdText(p.Name) + "\n\n")
	if loc := p.Location(); loc != "" {
		sb.WriteString("**" + mdText(loc) + "**\n\n")
	}
	if p.AccreditationStatus != "" {
		sb.WriteString(strings.ToUpper(mdText(p.AccreditationStatus)) + "\n\n")
	}

	section := func(title string, rows [][2]string) {
		sb.WriteString("## " + title + "\n\n")
		sb.WriteString("| | |\n|---|---|\n")
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("| **%s** | %s |\n", r[0], mdCell(r[1])))
		}
		sb.WriteString("\n")
	}

	section("Program Details", [][2]string{
		{"Tuition", p.Tuition},
		{"Length", p.ProgramLength},
		{"Start Date", p.StartDate},
		{"Deadline", p.ApplicationDeadline},
	})
	section("Performance", [][2]string{
		{"PANCE Pass Rate", p.PANCEPassRate},
	})
	section("Requirements", [][2]string{
		{"Min GPA", p.MinGPA},
		{"Prereq GPA", p.PrerequisiteGPA},
		{"GRE", p.GRERequirement},
		{"PA-CAT", p.PACATRequirement},
	})
	section("Experience (Hours)", [][2]string{
		{"Clinical Required", p.HealthcareExperience},
		{"Shadowing", p.ShadowingHours},
	})
	if note := experienceNote(p); note != "" {
		sb.WriteString("_" + mdText(note) + "_\n\n")
	}

	features := make([][2]string, 0, len(selection.Features))
	for _, f := range selection.Features {
		features = append(features, [2]string{f.Label, selection.YesNo(f.Value(p))})
	}
	section("Features", features)

	return sb.String()
}

// experienceNote joins the experience type and note as sentences.
func experienceNote(p program.Program) string {
	var parts []string
	for _, s := range []string{p.ExperienceType, p.ExperienceNote} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, strings.TrimSuffix(s, ".")+".")
		}
	}
	return strings.Join(parts, " ")
}

func mdText(s string) string {
	return strings.NewReplacer("\n", " ", "*", `\*`, "_", `\_`, "#", `\#`).Replace(s)
}

func mdCell(s string) string {
	if s == "" {
		return "—"
	}
	return strings.ReplaceAll(mdText(s), "|", `\|`)
}

// RenderDetail renders DetailMarkdown for the terminal. style is a glamour
// standard style name; "" or "auto" picks one from the terminal background.
func RenderDetail(p program.Program, width int, style string) (string, error) {
	r, err := newRenderer(width, style)
	if err != nil {
		return "", err
	}
	return r.Render(DetailMarkdown(p))
}

func newRenderer(width int, style string) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	return glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(max(width, 20)),
	)
}

// DetailPageModel shows one program in a scrollable viewport.
type DetailPageModel struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	style    string
	program  program.Program
	loaded   bool
	styles   Styles
	width    int
	height   int
}

// NewDetailPageModel creates an empty detail page.
func NewDetailPageModel(styles Styles, glamourStyle string) DetailPageModel {
	m := DetailPageModel{
		viewport: viewport.New(DefaultWidth, DefaultHeight),
		style:    glamourStyle,
		styles:   styles,
		width:    DefaultWidth,
		height:   DefaultHeight,
	}
	m.UpdateContent()
	return m
}

// SetSize updates the size of the viewport and rewraps the document.
func (m *DetailPageModel) SetSize(w, h int) {
	if w != m.width {
		m.renderer = nil
	}
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h, MinTableHeight)
	m.UpdateContent()
}

// SetProgram shows p from the top.
func (m *DetailPageModel) SetProgram(p program.Program) {
	m.program = p
	m.loaded = true
	m.UpdateContent()
	m.viewport.GotoTop()
}

// Program returns the program on show.
func (m DetailPageModel) Program() program.Program {
	return m.program
}

// UpdateContent re-renders the program into the viewport. If glamour cannot
// render, the raw markdown is shown instead.
func (m *DetailPageModel) UpdateContent() {
	if !m.loaded {
		m.viewport.SetContent("No program selected.")
		return
	}

	md := DetailMarkdown(m.program)
	if m.renderer == nil {
		r, err := newRenderer(m.width-ViewportHorizontalPadding, m.style)
		if err != nil {
			m.viewport.SetContent(md)
			return
		}
		m.renderer = r
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		out = md
	}
	m.viewport.SetContent(out)
}

// Update handles messages.
func (m DetailPageModel) Update(msg tea.Msg) (DetailPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m DetailPageModel) View() string {
	return m.viewport.View()
}
