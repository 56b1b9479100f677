// Package app orchestre la session d'édition/lecture : possession du
// document, chargements et exports asynchrones, application des résultats
// en un point unique.
package app

import (
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/patrickprogramme/babelplayer/internal/config"
	"github.com/patrickprogramme/babelplayer/internal/lyrics"
	"github.com/patrickprogramme/babelplayer/internal/store"
)

// LoadState est l'état du chargement de paroles : une machine à états à
// écrivain unique, interrogée une fois par cycle de rafraîchissement.
// Elle remplace le couple « booléen partagé + canal » par un état
// explicite.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadPending
	LoadSucceeded
	LoadFailed
)

type loadResult struct {
	doc  *lyrics.Document
	path string
	err  error
}

// Session possède le document (écrivain unique : la boucle UI) et pilote
// les entrées/sorties longues hors de la boucle interactive. Les
// goroutines de chargement ne touchent jamais au document : elles
// déposent leur résultat dans un canal, appliqué par Poll au seul point
// de remplacement autorisé.
type Session struct {
	cfg *config.Config

	doc    *lyrics.Document
	editor *lyrics.Editor

	state    LoadState
	lastErr  error
	lastPath string
	results  chan loadResult

	saving      bool
	saveResults chan error
	saveErr     error
}

// NewSession construit une session sur un document vide.
func NewSession(cfg *config.Config) *Session {
	doc := lyrics.NewDocument()
	return &Session{
		cfg:         cfg,
		doc:         doc,
		editor:      lyrics.NewEditor(doc),
		results:     make(chan loadResult, 1),
		saveResults: make(chan error, 1),
	}
}

// Document retourne le document courant. Jamais nil.
func (s *Session) Document() *lyrics.Document {
	return s.doc
}

// Editor retourne l'éditeur structurel du document courant.
func (s *Session) Editor() *lyrics.Editor {
	return s.editor
}

func (s *Session) State() LoadState { return s.state }

// Loading indique qu'un chargement est en vol (anti double-déclenchement,
// pilote l'indicateur de progression).
func (s *Session) Loading() bool { return s.state == LoadPending }

// Err retourne l'erreur du dernier chargement échoué, nil sinon.
func (s *Session) Err() error { return s.lastErr }

// Path retourne le chemin du dernier chargement réussi.
func (s *Session) Path() string { return s.lastPath }

// Load déclenche le chargement asynchrone d'un fichier de paroles.
// L'extension décide de l'adaptateur : .ttml passe par l'import TTML,
// tout le reste par le format persisté JSON. Retourne false si un
// chargement est déjà en vol (déclenchement dupliqué supprimé). Pas
// d'annulation : une tâche partie court jusqu'au succès ou à l'échec.
func (s *Session) Load(path string) bool {
	if s.state == LoadPending {
		return false
	}
	s.state = LoadPending
	s.lastErr = nil
	go func() {
		var (
			doc *lyrics.Document
			err error
		)
		if strings.EqualFold(filepath.Ext(path), ".ttml") {
			doc, err = store.ImportTTML(path)
		} else {
			doc, err = store.LoadDocument(path)
		}
		s.results <- loadResult{doc: doc, path: path, err: err}
	}()
	return true
}

// Save déclenche l'export asynchrone du document courant vers path.
// Le document est cloné avant le départ de la goroutine : les éditions
// pendant l'export n'affectent pas le fichier écrit. Retourne false si
// un export est déjà en vol.
func (s *Session) Save(path string) bool {
	if s.saving {
		return false
	}
	s.saving = true
	s.saveErr = nil
	snapshot := s.doc.Clone()
	go func() {
		s.saveResults <- store.SaveDocument(snapshot, path)
	}()
	return true
}

// Saving indique qu'un export est en vol.
func (s *Session) Saving() bool { return s.saving }

// SaveErr retourne l'erreur du dernier export échoué, nil sinon.
func (s *Session) SaveErr() error { return s.saveErr }

// DefaultExportPath construit le chemin d'export par défaut dans le
// répertoire de sortie configuré, à partir du nom du dernier fichier
// chargé.
func (s *Session) DefaultExportPath() string {
	base := "lyrics"
	if s.lastPath != "" {
		name := filepath.Base(s.lastPath)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return filepath.Join(s.cfg.OutputDir, base+".babel.json")
}

// Poll applique au plus un résultat en attente. À appeler une fois par
// cycle de rafraîchissement : c'est l'unique point où le document est
// remplacé, donc aucun déchirement possible. Un chargement échoué laisse
// le document précédent intact et repasse la machine en LoadFailed pour
// qu'un nouvel essai manuel reste possible. Retourne true si le document
// a été remplacé.
func (s *Session) Poll() bool {
	changed := false
	select {
	case r := <-s.results:
		if r.err != nil {
			s.state = LoadFailed
			s.lastErr = r.err
			log.WithField("path", r.path).WithError(r.err).Error("lyrics load failed")
		} else {
			s.doc = r.doc
			s.editor = lyrics.NewEditor(s.doc)
			s.state = LoadSucceeded
			s.lastPath = r.path
			log.WithField("path", r.path).Info("lyrics loaded")
			changed = true
		}
	default:
	}

	select {
	case err := <-s.saveResults:
		s.saving = false
		s.saveErr = err
		if err != nil {
			log.WithError(err).Error("lyrics export failed")
		}
	default:
	}
	return changed
}

// CopyLineText rend le texte presse-papier d'une ligne : texte original
// puis, pour chaque langue enregistrée, « nom : mots ».
func CopyLineText(doc *lyrics.Document, li int) (string, error) {
	if doc == nil || li < 0 || li >= len(doc.Lyrics.Lines) {
		return "", fmt.Errorf("no line %d", li)
	}
	line := &doc.Lyrics.Lines[li]
	var b strings.Builder
	b.WriteString(line.Text())
	for _, lang := range doc.Metadata.Translations {
		t := line.Translation(lang.ID)
		if t == nil || len(t.Words) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(lang.Name)
		b.WriteString(": ")
		b.WriteString(strings.Join(t.Words, " "))
	}
	return b.String(), nil
}
