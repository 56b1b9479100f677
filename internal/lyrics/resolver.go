package lyrics

import (
	"github.com/google/uuid"

	"github.com/patrickprogramme/babelplayer/pkg/model"
)

// ActiveWindow est le résultat de la résolution d'un instant de lecture :
// la ligne active, le segment actif et, par langue, l'ensemble des mots
// traduits surlignés (ceux associés aux segments actifs).
// LineIndex/SegmentIndex valent -1 quand rien n'est actif.
type ActiveWindow struct {
	Line         *Line
	LineIndex    int
	Segment      *Segment
	SegmentIndex int

	// Highlighted : langue -> ensemble des indices de mots traduits
	// à surligner. Union des associations de tous les segments actifs
	// de la ligne (en pratique au plus un sous timing non chevauchant).
	Highlighted map[uuid.UUID]map[int]bool
}

// Resolve calcule la fenêtre active du document à l'instant ts.
// Fonction pure, sans état : appelée à chaque rafraîchissement pendant la
// lecture, elle reste un parcours linéaire sans autre allocation que les
// petits ensembles du résultat.
//
// Politique de bornes : intervalle strictement ouvert. Une ligne (ou un
// segment) est active ssi begin < ts < end ; un élément qui se termine
// exactement à l'instant courant est considéré fini, un élément qui
// commence exactement à l'instant courant n'a pas commencé.
func Resolve(doc *Document, ts model.Millis) ActiveWindow {
	w := ActiveWindow{LineIndex: -1, SegmentIndex: -1}
	if doc == nil {
		return w
	}
	for li := range doc.Lyrics.Lines {
		line := &doc.Lyrics.Lines[li]
		if !activeAt(ts, line.Begin, line.End) {
			continue
		}
		w.Line = line
		w.LineIndex = li
		w.Highlighted = make(map[uuid.UUID]map[int]bool)
		for si := range line.Original {
			seg := &line.Original[si]
			if !activeAt(ts, seg.Begin, seg.End) {
				continue
			}
			if w.Segment == nil {
				w.Segment = seg
				w.SegmentIndex = si
			}
			for _, st := range seg.Translations {
				if len(st.WordIndexes) == 0 {
					continue
				}
				set := w.Highlighted[st.LanguageID]
				if set == nil {
					set = make(map[int]bool, len(st.WordIndexes))
					w.Highlighted[st.LanguageID] = set
				}
				for _, idx := range st.WordIndexes {
					set[idx] = true
				}
			}
		}
		return w
	}
	return w
}

// SegmentActive indique si le segment d'indice si de la ligne active est
// actif à l'instant ts. Pratique pour le rendu : la ligne active peut
// contenir plusieurs segments actifs sous des timings chevauchants.
func (w ActiveWindow) SegmentActive(si int, ts model.Millis) bool {
	if w.Line == nil || si < 0 || si >= len(w.Line.Original) {
		return false
	}
	seg := &w.Line.Original[si]
	return activeAt(ts, seg.Begin, seg.End)
}

func activeAt(ts, begin, end model.Millis) bool {
	return ts > begin && ts < end
}
