package ttml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/patrickprogramme/babelplayer/pkg/model"
)

// Parse lit un document TTML et retourne ses lignes horodatées.
// Une erreur XML ou une ligne sans bornes exploitables est une erreur de
// parse (jamais un panic). Les spans de chœurs (ttm:role="x-bg") sont
// ignorés : le document de paroles ne modélise que la voix principale.
func Parse(r io.Reader) ([]model.TimedLine, error) {
	var doc ttDoc
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse ttml: %w", err)
	}

	var lines []model.TimedLine
	for di, div := range doc.Body.Divs {
		for pi, p := range div.Paragraphs {
			line, ok, err := paragraphToLine(p)
			if err != nil {
				return nil, fmt.Errorf("parse ttml: div %d, p %d: %w", di, pi, err)
			}
			if ok {
				lines = append(lines, line)
			}
		}
	}
	log.Debugf("ttml: parsed %d lines", len(lines))
	if len(lines) == 0 {
		return nil, fmt.Errorf("parse ttml: no timed lines found")
	}
	return lines, nil
}

func paragraphToLine(p ttParagraph) (model.TimedLine, bool, error) {
	var line model.TimedLine
	begin, err := ParseTime(p.Begin)
	if err != nil {
		return line, false, fmt.Errorf("line begin: %w", err)
	}
	end, err := ParseTime(p.End)
	if err != nil {
		return line, false, fmt.Errorf("line end: %w", err)
	}
	line.Begin = begin
	line.End = end
	line.Agent = p.Agent

	cursor := begin
	for _, s := range p.Spans {
		if s.Role == "x-bg" || len(s.Nested) > 0 {
			// voix de fond : hors périmètre de la voix principale
			continue
		}
		if s.Text == "" {
			continue
		}
		w := model.TimedWord{Text: s.Text}
		switch {
		case s.gap || s.Begin == "" || s.End == "":
			// espace synthétisé ou span sans timing propre :
			// durée nulle à la position courante
			w.Begin, w.End = cursor, cursor
		default:
			wb, err := ParseTime(s.Begin)
			if err != nil {
				log.Warnf("ttml: unparsable span begin %q, using line cursor", s.Begin)
				wb = cursor
			}
			we, err := ParseTime(s.End)
			if err != nil {
				log.Warnf("ttml: unparsable span end %q, using span begin", s.End)
				we = wb
			}
			w.Begin, w.End = wb, we
			cursor = we
		}
		line.Words = append(line.Words, w)
	}

	// TTML ligne-à-ligne : pas de spans, le texte direct du <p> devient
	// un unique mot couvrant toute la ligne
	if len(line.Words) == 0 {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			return line, false, nil
		}
		line.Words = []model.TimedWord{{Begin: begin, End: end, Text: text}}
	}
	return line, true, nil
}
