// Package ttml parse les fichiers TTML mot-à-mot (AMLL / Apple syllable
// lyrics) vers la structure neutre []model.TimedLine consommée par
// l'adaptateur d'import du document.
package ttml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/babelplayer/pkg/model"
)

type ttDoc struct {
	XMLName xml.Name `xml:"tt"`
	Body    struct {
		Divs []ttDiv `xml:"div"`
	} `xml:"body"`
}

type ttDiv struct {
	Paragraphs []ttParagraph `xml:"p"`
}

// ttParagraph est une ligne (<p>). Le décodage est manuel pour préserver
// l'ordre des spans ET le blanc entre spans : dans le TTML mot-à-mot, les
// espaces entre mots sont du chardata direct du <p>, pas des éléments.
type ttParagraph struct {
	Begin string
	End   string
	Agent string
	Text  string // chardata direct cumulé (texte hors spans)
	Spans []ttSpan
}

type ttSpan struct {
	Begin  string   `xml:"begin,attr"`
	End    string   `xml:"end,attr"`
	Role   string   `xml:"role,attr"`
	Text   string   `xml:",chardata"`
	Nested []ttSpan `xml:"span"`

	// gap : espace synthétisé depuis le chardata entre deux spans.
	gap bool
}

func (p *ttParagraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "begin":
			p.Begin = a.Value
		case "end":
			p.End = a.Value
		case "agent":
			p.Agent = a.Value
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "span" {
				var s ttSpan
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				p.Spans = append(p.Spans, s)
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.CharData:
			p.Text += string(t)
			// un blanc entre deux spans est un mot-espace à part entière
			if len(p.Spans) > 0 && strings.Contains(string(t), " ") {
				p.Spans = append(p.Spans, ttSpan{Text: " ", gap: true})
			}
		case xml.EndElement:
			return nil
		}
	}
}

// ParseTime convertit un horodatage TTML en millisecondes.
// Formats acceptés : "H:MM:SS.mmm", "MM:SS.mmm", "SS.mmm", "1234ms",
// "12.5s". Les composantes horaires sont des flottants, comme dans les
// exports réels.
func ParseTime(s string) (model.Millis, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	if strings.HasSuffix(s, "ms") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "ms"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		return model.Millis(v), nil
	}
	if strings.HasSuffix(s, "s") && !strings.Contains(s, ":") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "s"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		return model.Millis(v * 1000), nil
	}

	parts := strings.Split(s, ":")
	var hours, minutes, seconds float64
	var err error
	switch len(parts) {
	case 1:
		seconds, err = strconv.ParseFloat(parts[0], 64)
	case 2:
		minutes, err = strconv.ParseFloat(parts[0], 64)
		if err == nil {
			seconds, err = strconv.ParseFloat(parts[1], 64)
		}
	case 3:
		hours, err = strconv.ParseFloat(parts[0], 64)
		if err == nil {
			minutes, err = strconv.ParseFloat(parts[1], 64)
		}
		if err == nil {
			seconds, err = strconv.ParseFloat(parts[2], 64)
		}
	default:
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	total := hours*3600 + minutes*60 + seconds
	if total < 0 {
		return 0, fmt.Errorf("negative timestamp %q", s)
	}
	return model.Millis(total * 1000), nil
}
