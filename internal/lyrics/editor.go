package lyrics

import (
	"github.com/google/uuid"
)

// Editor centralise toutes les mutations structurelles du document.
// C'est le seul endroit où la comptabilité des indices positionnels
// (associations segment -> mot traduit) est maintenue : aucun site
// d'appel ne doit modifier Translations directement.
//
// Politique d'échec : toutes les opérations sont totales. Un indice hors
// bornes est borné ou ignoré (no-op), jamais une erreur : l'état vient
// d'éditions interactives en mémoire, pas d'un magasin transactionnel.
type Editor struct {
	doc *Document
}

// NewEditor construit un éditeur sur le document donné. L'éditeur ne
// prend pas possession du document : l'appelant reste l'unique écrivain.
func NewEditor(doc *Document) *Editor {
	return &Editor{doc: doc}
}

// Document retourne le document édité.
func (e *Editor) Document() *Document {
	return e.doc
}

// AddLanguage enregistre une nouvelle langue de traduction et retourne
// son ID. Une entrée vide est ajoutée à chaque ligne et chaque segment du
// document entier : après l'appel, l'invariant « exactement une entrée
// par langue enregistrée » est rétabli partout.
func (e *Editor) AddLanguage(name string) uuid.UUID {
	id := uuid.New()
	e.doc.Metadata.Translations = append(e.doc.Metadata.Translations, TranslationLanguage{
		ID:   id,
		Name: name,
	})
	for li := range e.doc.Lyrics.Lines {
		line := &e.doc.Lyrics.Lines[li]
		line.Translations = append(line.Translations, LineTranslation{LanguageID: id, Words: []string{}})
		for si := range line.Original {
			seg := &line.Original[si]
			seg.Translations = append(seg.Translations, SegmentTranslation{LanguageID: id, WordIndexes: []int{}})
		}
	}
	return id
}

// RemoveLanguage retire la langue des métadonnées et son entrée de chaque
// ligne et chaque segment. No-op silencieux si l'ID est inconnu.
func (e *Editor) RemoveLanguage(id uuid.UUID) {
	meta := &e.doc.Metadata
	kept := meta.Translations[:0]
	for _, t := range meta.Translations {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	meta.Translations = kept

	for li := range e.doc.Lyrics.Lines {
		line := &e.doc.Lyrics.Lines[li]
		lt := line.Translations[:0]
		for _, t := range line.Translations {
			if t.LanguageID != id {
				lt = append(lt, t)
			}
		}
		line.Translations = lt
		for si := range line.Original {
			seg := &line.Original[si]
			st := seg.Translations[:0]
			for _, t := range seg.Translations {
				if t.LanguageID != id {
					st = append(st, t)
				}
			}
			seg.Translations = st
		}
	}
}

// AddLine ajoute en fin de document une ligne vide de durée nulle, avec
// un UUID frais et une entrée de traduction vide par langue enregistrée.
// Retourne l'indice de la nouvelle ligne.
func (e *Editor) AddLine() int {
	line := Line{
		UUID:         uuid.New(),
		Original:     []Segment{},
		Translations: e.emptyLineTranslations(),
	}
	e.doc.Lyrics.Lines = append(e.doc.Lyrics.Lines, line)
	return len(e.doc.Lyrics.Lines) - 1
}

// InsertSegment insère à la position at un segment vide de durée nulle
// avec une entrée d'association vide par langue enregistrée. at est borné
// dans [0, len] : au-delà de la fin, le segment est ajouté en dernier.
// L'insertion est locale : les associations des autres segments pointent
// vers les mots de la ligne, pas vers des positions de segments, donc
// aucune renumérotation n'est nécessaire.
func (e *Editor) InsertSegment(line, at int) {
	l := e.line(line)
	if l == nil {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(l.Original) {
		at = len(l.Original)
	}
	seg := Segment{Translations: e.emptySegmentTranslations()}
	l.Original = append(l.Original, Segment{})
	copy(l.Original[at+1:], l.Original[at:])
	l.Original[at] = seg
}

// RemoveSegment supprime le segment à l'indice donné. No-op si l'indice
// est hors bornes. Les associations des autres segments sont
// indépendantes par segment : rien d'autre à maintenir.
func (e *Editor) RemoveSegment(line, at int) {
	l := e.line(line)
	if l == nil || at < 0 || at >= len(l.Original) {
		return
	}
	l.Original = append(l.Original[:at], l.Original[at+1:]...)
}

// MoveSegment échange les segments aux positions from et to. Les
// associations voyagent avec leur segment. No-op si un indice est hors
// bornes.
func (e *Editor) MoveSegment(line, from, to int) {
	l := e.line(line)
	if l == nil {
		return
	}
	n := len(l.Original)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	l.Original[from], l.Original[to] = l.Original[to], l.Original[from]
}

// AddTranslationWord ajoute un mot vide en fin de liste de traduction de
// la ligne pour la langue donnée. Ajout en fin de liste : les indices
// existants restent valides, aucune renumérotation.
func (e *Editor) AddTranslationWord(line int, lang uuid.UUID) {
	l := e.line(line)
	if l == nil {
		return
	}
	t := l.Translation(lang)
	if t == nil {
		return
	}
	t.Words = append(t.Words, "")
}

// SetTranslationWord remplace le texte du mot à l'indice word. No-op si
// la langue ou l'indice est inconnu.
func (e *Editor) SetTranslationWord(line int, lang uuid.UUID, word int, text string) {
	l := e.line(line)
	if l == nil {
		return
	}
	t := l.Translation(lang)
	if t == nil || word < 0 || word >= len(t.Words) {
		return
	}
	t.Words[word] = text
}

// RemoveTranslationWord supprime le mot à l'indice word de la liste de
// traduction de la ligne pour la langue donnée, puis maintient les
// associations de chaque segment de la ligne : l'indice supprimé est
// retiré et chaque indice enregistré strictement supérieur est décrémenté
// de un. C'est l'unique opération où la cohérence positionnelle doit être
// activement réparée ; omettre la décrémentation désynchronise toutes les
// associations suivantes.
func (e *Editor) RemoveTranslationWord(line int, lang uuid.UUID, word int) {
	l := e.line(line)
	if l == nil {
		return
	}
	t := l.Translation(lang)
	if t == nil || word < 0 || word >= len(t.Words) {
		return
	}
	t.Words = append(t.Words[:word], t.Words[word+1:]...)

	for si := range l.Original {
		st := l.Original[si].Translation(lang)
		if st == nil {
			continue
		}
		kept := st.WordIndexes[:0]
		for _, idx := range st.WordIndexes {
			switch {
			case idx == word:
				// l'association vers le mot supprimé disparaît
			case idx > word:
				kept = append(kept, idx-1)
			default:
				kept = append(kept, idx)
			}
		}
		st.WordIndexes = kept
	}
}

// SetWordAssociation ajoute (include=true) ou retire (include=false)
// l'indice word de la liste d'associations du segment pour la langue
// donnée. L'ajout est idempotent : aucun doublon ne s'accumule.
func (e *Editor) SetWordAssociation(line, seg int, lang uuid.UUID, word int, include bool) {
	l := e.line(line)
	if l == nil || seg < 0 || seg >= len(l.Original) {
		return
	}
	st := l.Original[seg].Translation(lang)
	if st == nil || word < 0 {
		return
	}
	if include {
		for _, idx := range st.WordIndexes {
			if idx == word {
				return
			}
		}
		st.WordIndexes = append(st.WordIndexes, word)
		return
	}
	kept := st.WordIndexes[:0]
	for _, idx := range st.WordIndexes {
		if idx != word {
			kept = append(kept, idx)
		}
	}
	st.WordIndexes = kept
}

// SetAgent remplace l'agent_id de la ligne. Texte libre, non validé
// contre Metadata.Agents.
func (e *Editor) SetAgent(line int, agentID string) {
	l := e.line(line)
	if l == nil {
		return
	}
	l.AgentID = agentID
}

func (e *Editor) line(i int) *Line {
	if i < 0 || i >= len(e.doc.Lyrics.Lines) {
		return nil
	}
	return &e.doc.Lyrics.Lines[i]
}

func (e *Editor) emptyLineTranslations() []LineTranslation {
	out := make([]LineTranslation, 0, len(e.doc.Metadata.Translations))
	for _, t := range e.doc.Metadata.Translations {
		out = append(out, LineTranslation{LanguageID: t.ID, Words: []string{}})
	}
	return out
}

func (e *Editor) emptySegmentTranslations() []SegmentTranslation {
	out := make([]SegmentTranslation, 0, len(e.doc.Metadata.Translations))
	for _, t := range e.doc.Metadata.Translations {
		out = append(out, SegmentTranslation{LanguageID: t.ID, WordIndexes: []int{}})
	}
	return out
}
