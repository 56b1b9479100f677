package lyrics

import (
	"github.com/google/uuid"

	"github.com/patrickprogramme/babelplayer/pkg/model"
)

// FromTimedLines construit un document à partir de la structure produite
// par un parseur externe (TTML mot-à-mot) : chaque ligne horodatée
// devient une Line (UUID frais), chaque mot horodaté un Segment. Aucune
// langue de traduction n'est enregistrée ; les métadonnées sont vides.
func FromTimedLines(lines []model.TimedLine) *Document {
	doc := NewDocument()
	for _, tl := range lines {
		line := Line{
			Begin:        tl.Begin,
			End:          tl.End,
			AgentID:      tl.Agent,
			UUID:         uuid.New(),
			Original:     make([]Segment, 0, len(tl.Words)),
			Translations: []LineTranslation{},
		}
		for _, w := range tl.Words {
			line.Original = append(line.Original, Segment{
				Begin:        w.Begin,
				End:          w.End,
				Text:         w.Text,
				Translations: []SegmentTranslation{},
			})
		}
		doc.Lyrics.Lines = append(doc.Lyrics.Lines, line)
	}
	return doc
}
