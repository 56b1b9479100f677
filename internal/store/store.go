// Package store charge et sauvegarde le document de paroles sur disque.
// Un chargement échoué ne touche jamais l'état en mémoire : les fonctions
// retournent un document frais ou une erreur, c'est l'appelant qui décide
// du remplacement.
package store

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/patrickprogramme/babelplayer/internal/fsutil"
	"github.com/patrickprogramme/babelplayer/internal/lyrics"
	"github.com/patrickprogramme/babelplayer/internal/ttml"
)

const filePerm = 0o644

// LoadDocument lit un document Babel Lyrics (JSON persisté) depuis path.
func LoadDocument(path string) (*lyrics.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lyrics file %s: %w", path, err)
	}
	defer f.Close()

	doc, err := lyrics.ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("read lyrics file %s: %w", path, err)
	}
	log.WithField("path", path).Debugf("loaded document: %d lines, %d languages",
		len(doc.Lyrics.Lines), len(doc.Metadata.Translations))
	return doc, nil
}

// ImportTTML lit un fichier TTML mot-à-mot et le convertit en document
// (sans langues de traduction, métadonnées vides).
func ImportTTML(path string) (*lyrics.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ttml file %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ttml.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("import ttml %s: %w", path, err)
	}
	return lyrics.FromTimedLines(lines), nil
}

// SaveDocument exporte le document au format persisté, par écriture
// atomique (fichier temporaire + rename) : jamais de fichier partiel.
func SaveDocument(doc *lyrics.Document, path string) error {
	data, err := lyrics.MarshalDocument(doc)
	if err != nil {
		return fmt.Errorf("save lyrics file %s: %w", path, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("write lyrics file %s: %w", path, err)
	}
	log.WithField("path", path).Debug("document saved")
	return nil
}
