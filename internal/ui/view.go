package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/patrickprogramme/babelplayer/internal/lyrics"
)

// nombre de lignes de contexte affichées de part et d'autre de la ligne
// centrée.
const contextLines = 4

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width == 0 {
		width = 80
	}
	height := m.height
	if height == 0 {
		height = 24
	}

	doc := m.session.Document()
	w := lyrics.Resolve(doc, m.position)

	var out []string
	out = append(out, m.headerView(width))
	out = append(out, "")

	center := m.centerIndex()
	if m.mode == modeEdit {
		center = m.selected
	}

	body := m.bodyView(doc, w, center, width)
	out = append(out, body...)

	// remplissage jusqu'au pied de page
	for len(out) < height-3 {
		out = append(out, "")
	}

	if m.prompt != promptNone {
		out = append(out, m.input.View())
	} else {
		out = append(out, m.status)
	}
	out = append(out, m.styles.help.Render(m.helpView()))

	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (m Model) headerView(width int) string {
	title := m.session.Path()
	if title == "" {
		title = "babelplayer"
	}
	if m.session.Loading() {
		title += " (chargement…)"
	}
	if m.session.Saving() {
		title += " (export…)"
	}
	if err := m.session.Err(); err != nil {
		title += " " + m.styles.errs.Render("["+err.Error()+"]")
	}

	clock := m.position.Clock()
	if total, ok := m.transport.Total(); ok {
		clock += " / " + total.Clock()
	}
	state := "⏸"
	if m.transport.Playing() {
		state = "▶"
	}
	right := fmt.Sprintf("%s %s", state, clock)

	gap := width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.header.Render(title) + strings.Repeat(" ", gap) + right
}

func (m Model) bodyView(doc *lyrics.Document, w lyrics.ActiveWindow, center, width int) []string {
	var out []string
	lines := doc.Lyrics.Lines
	if len(lines) == 0 {
		out = append(out, m.styles.context.Render("(document vide)"))
		return out
	}

	for li := center - contextLines; li <= center+contextLines; li++ {
		if li < 0 || li >= len(lines) {
			out = append(out, "")
			continue
		}
		line := &lines[li]

		marker := "  "
		if m.mode == modeEdit && li == m.selected {
			marker = "> "
		}

		switch {
		case li == w.LineIndex:
			out = append(out, marker+m.activeLineView(line, w))
			out = append(out, m.translationViews(doc, line, w)...)
		case m.mode == modeEdit && li == m.selected:
			out = append(out, marker+m.plainLineView(line))
			out = append(out, m.detailViews(doc, line)...)
		default:
			text := line.Text()
			if text == "" {
				text = "…"
			}
			out = append(out, marker+m.styles.context.Render(text))
		}
	}
	return out
}

// activeLineView rend la ligne active segment par segment : les segments
// actifs à l'instant courant en couleur active, le reste en style neutre.
func (m Model) activeLineView(line *lyrics.Line, w lyrics.ActiveWindow) string {
	var b strings.Builder
	for si := range line.Original {
		text := line.Original[si].Text
		if w.SegmentActive(si, m.position) {
			b.WriteString(m.styles.active.Render(text))
		} else {
			b.WriteString(m.styles.plain.Render(text))
		}
	}
	if b.Len() == 0 {
		return "…"
	}
	return b.String()
}

// translationViews rend, sous la ligne active, une ligne par langue :
// les mots associés aux segments actifs en couleur active, les autres
// atténués.
func (m Model) translationViews(doc *lyrics.Document, line *lyrics.Line, w lyrics.ActiveWindow) []string {
	var out []string
	for _, lang := range doc.Metadata.Translations {
		t := line.Translation(lang.ID)
		if t == nil || len(t.Words) == 0 {
			continue
		}
		highlighted := w.Highlighted[lang.ID]

		parts := make([]string, 0, len(t.Words))
		for wi, word := range t.Words {
			if highlighted[wi] {
				parts = append(parts, m.styles.active.Render(word))
			} else {
				parts = append(parts, m.styles.dim.Render(word))
			}
		}
		out = append(out, "    "+m.styles.dim.Render(lang.Name+": ")+strings.Join(parts, " "))
	}
	return out
}

func (m Model) plainLineView(line *lyrics.Line) string {
	text := line.Text()
	if text == "" {
		text = "…"
	}
	return text
}

// detailViews rend le détail d'édition de la ligne sélectionnée :
// segments indexés puis mots traduits indexés par langue.
func (m Model) detailViews(doc *lyrics.Document, line *lyrics.Line) []string {
	var out []string

	var b strings.Builder
	for si := range line.Original {
		text := line.Original[si].Text
		if text == "" {
			text = "·"
		}
		b.WriteString(m.styles.dim.Render(fmt.Sprintf("[%d]", si)))
		b.WriteString(text)
		b.WriteString(" ")
	}
	if b.Len() > 0 {
		out = append(out, "    "+strings.TrimRight(b.String(), " "))
	}

	for _, lang := range doc.Metadata.Translations {
		t := line.Translation(lang.ID)
		if t == nil || len(t.Words) == 0 {
			continue
		}
		var tb strings.Builder
		tb.WriteString(m.styles.dim.Render(lang.Name + ": "))
		for wi, word := range t.Words {
			tb.WriteString(m.styles.dim.Render(fmt.Sprintf("[%d]", wi)))
			tb.WriteString(word)
			tb.WriteString(" ")
		}
		out = append(out, "    "+strings.TrimRight(tb.String(), " "))
	}
	return out
}

func (m Model) helpView() string {
	if m.prompt != promptNone {
		return "entrée valider • échap annuler"
	}
	if m.mode == modeEdit {
		return "j/k ligne • n nouvelle ligne • a/x segment • g/G langue • t mot • échap lecteur • q quitter"
	}
	return "espace lecture/pause • ←/→ ±5s • ↑/↓ sync ±100ms • 0 reset • c copier • s exporter • r recharger • e éditer • q quitter"
}
