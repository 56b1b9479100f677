// Package ui fournit l'interface terminal : vue lecteur (paroles
// synchronisées, segment actif surligné, traductions) et mode édition
// structurelle sur le document courant.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/patrickprogramme/babelplayer/internal/app"
	"github.com/patrickprogramme/babelplayer/internal/clipboard"
	"github.com/patrickprogramme/babelplayer/internal/config"
	"github.com/patrickprogramme/babelplayer/internal/lyrics"
	"github.com/patrickprogramme/babelplayer/internal/player"
	"github.com/patrickprogramme/babelplayer/pkg/model"
)

// mode de l'interface : lecteur ou édition structurelle.
type mode int

const (
	modePlayer mode = iota
	modeEdit
)

// promptKind identifie la saisie en cours quand le champ texte est ouvert.
type promptKind int

const (
	promptNone promptKind = iota
	promptLanguage
	promptWord
)

type tickMsg time.Time

// Model est le modèle Bubble Tea de l'application. La boucle Update est
// l'unique écrivain du document : chaque tick applique les résultats
// asynchrones via session.Poll puis relit la position de lecture.
type Model struct {
	cfg       *config.Config
	session   *app.Session
	transport player.Transport

	position   model.Millis // position affichée (décalage inclus)
	syncOffset model.Millis // décalage de synchro ajustable au clavier

	mode     mode
	selected int // ligne sélectionnée en mode édition

	prompt promptKind
	input  textinput.Model

	styles styles
	width  int
	height int

	status   string
	quitting bool
}

type styles struct {
	active  lipgloss.Style
	plain   lipgloss.Style
	dim     lipgloss.Style
	context lipgloss.Style
	header  lipgloss.Style
	help    lipgloss.Style
	errs    lipgloss.Style
}

// New construit le modèle sur une session et un transport de lecture.
func New(cfg *config.Config, session *app.Session, transport player.Transport) Model {
	in := textinput.New()
	in.CharLimit = 120
	in.Width = 40

	return Model{
		cfg:        cfg,
		session:    session,
		transport:  transport,
		syncOffset: model.Millis(cfg.SyncOffsetMs),
		input:      in,
		styles: styles{
			active:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.Colors.Active)),
			plain:   lipgloss.NewStyle(),
			dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Colors.Dim)),
			context: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Colors.Context)),
			header:  lipgloss.NewStyle().Bold(true),
			help:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Colors.Context)),
			errs:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		},
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.session.Poll()
		m.clampSelection()
		if pos, err := m.transport.Position(); err == nil {
			m.position = pos.Add(m.syncOffset)
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updatePlayer(msg)
		}
	}
	return m, nil
}

func (m Model) updatePlayer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case " ", "space":
		var err error
		if m.transport.Playing() {
			err = m.transport.Pause()
		} else {
			err = m.transport.Play()
		}
		if err != nil {
			m.status = m.styles.errs.Render(err.Error())
		}
		return m, nil

	case "left":
		m.seekBy(-5000)
		return m, nil
	case "right":
		m.seekBy(5000)
		return m, nil

	case "up", "+", "=":
		m.syncOffset += 100
		m.status = fmt.Sprintf("sync %+dms", m.syncOffset)
		return m, nil
	case "down", "-":
		m.syncOffset -= 100
		m.status = fmt.Sprintf("sync %+dms", m.syncOffset)
		return m, nil
	case "0":
		m.syncOffset = 0
		m.status = "sync reset"
		return m, nil

	case "c":
		m.copyActiveLine()
		return m, nil

	case "s":
		path := m.session.DefaultExportPath()
		if m.session.Save(path) {
			m.status = "export: " + path
		} else {
			m.status = "export déjà en cours"
		}
		return m, nil

	case "r":
		path := m.session.Path()
		if path == "" {
			path = m.cfg.LyricsPath
		}
		if path == "" {
			m.status = "aucun fichier à recharger"
		} else if !m.session.Load(path) {
			m.status = "chargement déjà en cours"
		}
		return m, nil

	case "e", "tab":
		m.mode = modeEdit
		m.selected = m.centerIndex()
		m.clampSelection()
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.session.Editor()
	doc := m.session.Document()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc", "e", "tab":
		m.mode = modePlayer
		m.status = ""
		return m, nil

	case "down", "j":
		m.selected++
		m.clampSelection()
		return m, nil
	case "up", "k":
		m.selected--
		m.clampSelection()
		return m, nil

	case "n":
		m.selected = ed.AddLine()
		m.status = "ligne ajoutée"
		return m, nil

	case "a":
		if li := m.selected; li >= 0 && li < len(doc.Lyrics.Lines) {
			ed.InsertSegment(li, len(doc.Lyrics.Lines[li].Original))
			m.status = "segment ajouté"
		}
		return m, nil

	case "x":
		if li := m.selected; li >= 0 && li < len(doc.Lyrics.Lines) {
			n := len(doc.Lyrics.Lines[li].Original)
			if n > 0 {
				ed.RemoveSegment(li, n-1)
				m.status = "segment supprimé"
			}
		}
		return m, nil

	case "g":
		return m.openPrompt(promptLanguage, "nom de la langue")

	case "G":
		langs := doc.Metadata.Translations
		if len(langs) == 0 {
			m.status = "aucune langue à retirer"
			return m, nil
		}
		last := langs[len(langs)-1]
		ed.RemoveLanguage(last.ID)
		m.status = "langue retirée : " + last.Name
		return m, nil

	case "t":
		if len(doc.Metadata.Translations) == 0 {
			m.status = "aucune langue enregistrée (g pour en ajouter une)"
			return m, nil
		}
		if m.selected < 0 || m.selected >= len(doc.Lyrics.Lines) {
			m.status = "aucune ligne sélectionnée"
			return m, nil
		}
		return m.openPrompt(promptWord, "mot traduit")
	}
	return m, nil
}

func (m Model) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		kind := m.prompt
		m.prompt = promptNone
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		m.commitPrompt(kind, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitPrompt(kind promptKind, value string) {
	ed := m.session.Editor()
	doc := m.session.Document()

	switch kind {
	case promptLanguage:
		ed.AddLanguage(value)
		m.status = "langue ajoutée : " + value

	case promptWord:
		if len(doc.Metadata.Translations) == 0 {
			return
		}
		li := m.selected
		if li < 0 || li >= len(doc.Lyrics.Lines) {
			return
		}
		// le mot rejoint la première langue enregistrée
		lang := doc.Metadata.Translations[0].ID
		ed.AddTranslationWord(li, lang)
		t := doc.Lyrics.Lines[li].Translation(lang)
		if t != nil {
			ed.SetTranslationWord(li, lang, len(t.Words)-1, value)
		}
		m.status = "mot ajouté : " + value
	}
}

// seekBy déplace la lecture relativement à la position affichée, hors
// décalage de synchro (le décalage est un artifice d'affichage, pas une
// position du lecteur).
func (m *Model) seekBy(delta model.Millis) {
	target := m.position.Add(delta - m.syncOffset)
	if err := m.transport.Seek(target); err != nil {
		m.status = m.styles.errs.Render(err.Error())
	}
}

func (m *Model) copyActiveLine() {
	w := lyrics.Resolve(m.session.Document(), m.position)
	if w.LineIndex < 0 {
		m.status = "aucune ligne active"
		return
	}
	text, err := app.CopyLineText(m.session.Document(), w.LineIndex)
	if err != nil {
		m.status = m.styles.errs.Render(err.Error())
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.status = m.styles.errs.Render("presse-papier : " + err.Error())
		return
	}
	m.status = "ligne copiée"
}

func (m *Model) clampSelection() {
	n := len(m.session.Document().Lyrics.Lines)
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= n {
		m.selected = n - 1
	}
}

// centerIndex retourne l'indice de la ligne à centrer : la ligne active
// si la résolution en trouve une, sinon la plus proche de la position.
func (m Model) centerIndex() int {
	doc := m.session.Document()
	if w := lyrics.Resolve(doc, m.position); w.LineIndex >= 0 {
		return w.LineIndex
	}
	return nearestLineIndex(doc, m.position)
}

// nearestLineIndex retourne l'indice de la dernière ligne commencée à
// l'instant ts, 0 si aucune.
func nearestLineIndex(doc *lyrics.Document, ts model.Millis) int {
	idx := 0
	for li := range doc.Lyrics.Lines {
		if doc.Lyrics.Lines[li].Begin <= ts {
			idx = li
			continue
		}
		break
	}
	return idx
}
