package lyrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Format persisté : le document JSON suit la disposition décrite dans
// SPEC_FULL.md §6 — les entrées de traduction sont encodées comme des
// paires `[language_id, liste]`, les durées comme des entiers en
// millisecondes. Le round-trip est exact (structures ordonnées, aucune
// map dans le format).

// MarshalJSON encode la paire `[language_id, [word_index, ...]]`.
func (t SegmentTranslation) MarshalJSON() ([]byte, error) {
	idx := t.WordIndexes
	if idx == nil {
		idx = []int{}
	}
	return json.Marshal([2]interface{}{t.LanguageID, idx})
}

// UnmarshalJSON décode la paire `[language_id, [word_index, ...]]`.
func (t *SegmentTranslation) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("segment translation: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("segment translation: expected pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &t.LanguageID); err != nil {
		return fmt.Errorf("segment translation language id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &t.WordIndexes); err != nil {
		return fmt.Errorf("segment translation word indexes: %w", err)
	}
	if t.WordIndexes == nil {
		t.WordIndexes = []int{}
	}
	return nil
}

// MarshalJSON encode la paire `[language_id, [word, ...]]`.
func (t LineTranslation) MarshalJSON() ([]byte, error) {
	words := t.Words
	if words == nil {
		words = []string{}
	}
	return json.Marshal([2]interface{}{t.LanguageID, words})
}

// UnmarshalJSON décode la paire `[language_id, [word, ...]]`.
func (t *LineTranslation) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("line translation: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line translation: expected pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &t.LanguageID); err != nil {
		return fmt.Errorf("line translation language id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &t.Words); err != nil {
		return fmt.Errorf("line translation words: %w", err)
	}
	if t.Words == nil {
		t.Words = []string{}
	}
	return nil
}

// MarshalDocument sérialise le document au format persisté (JSON indenté).
// Le document est normalisé avant encodage pour que l'export soit
// déterministe : deux exports successifs du même document sont identiques
// octet pour octet.
func MarshalDocument(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("marshal document: nil document")
	}
	c := doc.Clone()
	c.normalize()
	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return out, nil
}

// UnmarshalDocument désérialise le format persisté. Une entrée malformée
// retourne une erreur claire ; le document retourné est normalisé
// (invariant « une entrée de traduction par langue enregistrée » rétabli,
// entrées de langues inconnues écartées).
func UnmarshalDocument(b []byte) (*Document, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("unmarshal document: empty input")
	}
	return ReadDocument(bytes.NewReader(b))
}

// ReadDocument désérialise depuis un io.Reader.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.normalize()
	return &doc, nil
}

// normalize rétablit la validité structurelle : aucune slice nil, et pour
// chaque ligne/segment exactement une entrée de traduction par langue
// enregistrée, dans l'ordre du registre. Les entrées orphelines (langue
// absente du registre) sont écartées.
func (d *Document) normalize() {
	if d.Metadata.Agents == nil {
		d.Metadata.Agents = []Agent{}
	}
	if d.Metadata.Translations == nil {
		d.Metadata.Translations = []TranslationLanguage{}
	}
	if d.Lyrics.Lines == nil {
		d.Lyrics.Lines = []Line{}
	}
	for li := range d.Lyrics.Lines {
		line := &d.Lyrics.Lines[li]
		if line.Original == nil {
			line.Original = []Segment{}
		}
		lt := make([]LineTranslation, 0, len(d.Metadata.Translations))
		for _, lang := range d.Metadata.Translations {
			if t := line.Translation(lang.ID); t != nil {
				if t.Words == nil {
					t.Words = []string{}
				}
				lt = append(lt, *t)
			} else {
				lt = append(lt, LineTranslation{LanguageID: lang.ID, Words: []string{}})
			}
		}
		line.Translations = lt

		for si := range line.Original {
			seg := &line.Original[si]
			st := make([]SegmentTranslation, 0, len(d.Metadata.Translations))
			for _, lang := range d.Metadata.Translations {
				if t := seg.Translation(lang.ID); t != nil {
					if t.WordIndexes == nil {
						t.WordIndexes = []int{}
					}
					st = append(st, *t)
				} else {
					st = append(st, SegmentTranslation{LanguageID: lang.ID, WordIndexes: []int{}})
				}
			}
			seg.Translations = st
		}
	}
}
