package lyrics

import (
	"github.com/google/uuid"

	"github.com/patrickprogramme/babelplayer/pkg/model"
)

// TranslationLanguage est une langue de traduction enregistrée dans le
// document. ID est l'identité stable : toutes les références croisées
// (entrées de traduction des lignes et des segments) passent par cet ID,
// jamais par le nom affiché.
type TranslationLanguage struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"language"`
}

// Agent référence un interprète/locuteur. Métadonnée pure : le champ
// AgentID des lignes n'est pas validé contre cette liste.
type Agent struct {
	ID string `json:"id"`
}

// Metadata regroupe les agents et le registre des langues de traduction.
type Metadata struct {
	Agents       []Agent               `json:"agents"`
	Translations []TranslationLanguage `json:"translations"`
}

// SegmentTranslation associe, pour une langue, le segment aux mots
// traduits de la ligne : WordIndexes contient des indices positionnels
// dans la liste de mots de la LineTranslation de même LanguageID.
// Les indices sont positionnels, pas des identités stables : c'est
// l'éditeur qui maintient leur cohérence lors des suppressions de mots.
type SegmentTranslation struct {
	LanguageID  uuid.UUID
	WordIndexes []int
}

// LineTranslation est la traduction complète d'une ligne pour une langue :
// une séquence ordonnée de mots traduits.
type LineTranslation struct {
	LanguageID uuid.UUID
	Words      []string
}

// Segment est l'unité mot-à-mot du texte original d'une ligne.
// Invariant : Begin <= End. Translations contient exactement une entrée
// par langue enregistrée dans le document (entrée possiblement vide).
type Segment struct {
	Begin        model.Millis         `json:"begin_ms"`
	End          model.Millis         `json:"end_ms"`
	Text         string               `json:"text"`
	Translations []SegmentTranslation `json:"translations"`
}

// Line est un groupement phrase/vers de segments horodatés.
// UUID est généré une fois à la création et jamais réutilisé : c'est
// l'identité stable de la ligne, indépendante de sa position.
// Translations contient exactement une entrée par langue enregistrée.
type Line struct {
	Begin        model.Millis      `json:"begin_ms"`
	End          model.Millis      `json:"end_ms"`
	AgentID      string            `json:"agent_id"`
	UUID         uuid.UUID         `json:"uuid"`
	Original     []Segment         `json:"original"`
	Translations []LineTranslation `json:"translations"`
}

// Lyrics est la séquence ordonnée des lignes ; l'ordre d'insertion est
// l'ordre de lecture (aucune monotonie chronologique n'est imposée).
type Lyrics struct {
	Lines []Line `json:"lines"`
}

// Document est la racine ("Babel Lyrics") : métadonnées + paroles.
// Propriété exclusive de la session d'édition ; cloner avant de le
// transmettre à un autre composant.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Lyrics   Lyrics   `json:"lyrics"`
}

// NewDocument construit un document vide.
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{Agents: []Agent{}, Translations: []TranslationLanguage{}},
		Lyrics:   Lyrics{Lines: []Line{}},
	}
}

// Text concatène le texte de tous les segments de la ligne, sans
// séparateur (les espaces sont des segments à part entière).
func (l *Line) Text() string {
	var s string
	for i := range l.Original {
		s += l.Original[i].Text
	}
	return s
}

// Translation retourne l'entrée de traduction de la ligne pour la langue
// donnée, ou nil si la langue n'est pas présente.
func (l *Line) Translation(id uuid.UUID) *LineTranslation {
	for i := range l.Translations {
		if l.Translations[i].LanguageID == id {
			return &l.Translations[i]
		}
	}
	return nil
}

// Translation retourne l'entrée d'association du segment pour la langue
// donnée, ou nil si la langue n'est pas présente.
func (s *Segment) Translation(id uuid.UUID) *SegmentTranslation {
	for i := range s.Translations {
		if s.Translations[i].LanguageID == id {
			return &s.Translations[i]
		}
	}
	return nil
}

// LanguageName retourne le nom affiché d'une langue enregistrée.
func (d *Document) LanguageName(id uuid.UUID) (string, bool) {
	for _, t := range d.Metadata.Translations {
		if t.ID == id {
			return t.Name, true
		}
	}
	return "", false
}

// Clone retourne une copie profonde du document. Utilisé pour remettre
// le document à la vue de lecture sans partager d'état mutable.
func (d *Document) Clone() *Document {
	c := &Document{
		Metadata: Metadata{
			Agents:       append([]Agent(nil), d.Metadata.Agents...),
			Translations: append([]TranslationLanguage(nil), d.Metadata.Translations...),
		},
	}
	c.Lyrics.Lines = make([]Line, len(d.Lyrics.Lines))
	for i := range d.Lyrics.Lines {
		c.Lyrics.Lines[i] = d.Lyrics.Lines[i].clone()
	}
	return c
}

func (l Line) clone() Line {
	c := l
	c.Original = make([]Segment, len(l.Original))
	for i := range l.Original {
		c.Original[i] = l.Original[i].clone()
	}
	c.Translations = make([]LineTranslation, len(l.Translations))
	for i, t := range l.Translations {
		c.Translations[i] = LineTranslation{
			LanguageID: t.LanguageID,
			Words:      append([]string(nil), t.Words...),
		}
	}
	return c
}

func (s Segment) clone() Segment {
	c := s
	c.Translations = make([]SegmentTranslation, len(s.Translations))
	for i, t := range s.Translations {
		c.Translations[i] = SegmentTranslation{
			LanguageID:  t.LanguageID,
			WordIndexes: append([]int(nil), t.WordIndexes...),
		}
	}
	return c
}
