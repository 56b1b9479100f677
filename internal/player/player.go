// Package player fournit la surface de contrôle de lecture consommée par
// l'interface : position courante, durée totale, play/pause/seek. Deux
// implémentations : l'horloge interne (Clock) et un lecteur externe MPRIS.
package player

import (
	"github.com/patrickprogramme/babelplayer/pkg/model"
)

// Transport est la surface de contrôle de lecture. Le résolveur ne fait
// que lire la position ; les seules mutations passent par des actions
// utilisateur explicites (play/pause/seek), immédiatement cohérentes.
type Transport interface {
	Play() error
	Pause() error

	// Seek positionne la lecture à pos. Pendant la lecture, l'offset
	// interne est rebasé : reprendre ensuite ne provoque aucun saut.
	Seek(pos model.Millis) error

	// Position retourne la position de lecture courante.
	Position() (model.Millis, error)

	// Total retourne la durée totale si elle est connue.
	Total() (model.Millis, bool)

	Playing() bool
}
