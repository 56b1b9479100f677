package player

import (
	"time"

	"github.com/patrickprogramme/babelplayer/pkg/model"
)

// State est l'état de l'horloge de lecture.
type State int

const (
	StateStopped State = iota
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Clock est l'horloge de lecture interne : une machine à trois états
// explicite (Stopped | Paused | Playing). La position n'est dérivée de
// l'horloge murale que dans l'état Playing :
//
//	position = offset + (now - startedAt)
//
// Dans les autres états, la position est exactement offset. Toute la
// comptabilité offset/instant vit ici, jamais dans les gestionnaires
// d'évènements de l'UI.
type Clock struct {
	now func() time.Time

	state     State
	startedAt time.Time    // instant du dernier play/resume (valide en Playing)
	offset    model.Millis // position accumulée jusqu'au dernier play/resume
	total     model.Millis // 0 = durée inconnue
}

// NewClock construit une horloge arrêtée sur l'horloge système.
func NewClock() *Clock {
	return newClockWith(time.Now)
}

// newClockWith permet d'injecter la source de temps (tests).
func newClockWith(now func() time.Time) *Clock {
	return &Clock{now: now, state: StateStopped}
}

// SetTotal enregistre la durée totale (0 = inconnue). La position est
// bornée par cette durée quand elle est connue.
func (c *Clock) SetTotal(d model.Millis) {
	if d < 0 {
		d = 0
	}
	c.total = d
}

func (c *Clock) Total() (model.Millis, bool) {
	return c.total, c.total > 0
}

func (c *Clock) State() State {
	return c.state
}

func (c *Clock) Playing() bool {
	return c.state == StatePlaying
}

// Play démarre ou reprend la lecture. No-op si déjà en lecture.
func (c *Clock) Play() error {
	if c.state == StatePlaying {
		return nil
	}
	c.startedAt = c.now()
	c.state = StatePlaying
	return nil
}

// Pause fige la position courante. No-op hors lecture.
func (c *Clock) Pause() error {
	if c.state != StatePlaying {
		return nil
	}
	c.offset = c.position()
	c.state = StatePaused
	return nil
}

// Stop arrête la lecture et ramène la position à zéro.
func (c *Clock) Stop() {
	c.state = StateStopped
	c.offset = 0
	c.startedAt = time.Time{}
}

// Seek positionne la lecture. En lecture, l'offset est rebasé sur
// l'instant courant pour que la position continue d'avancer depuis pos
// sans saut à la reprise.
func (c *Clock) Seek(pos model.Millis) error {
	pos = pos.Clamp(c.total)
	c.offset = pos
	if c.state == StatePlaying {
		c.startedAt = c.now()
	}
	return nil
}

// Position retourne la position de lecture courante.
func (c *Clock) Position() (model.Millis, error) {
	return c.position(), nil
}

func (c *Clock) position() model.Millis {
	pos := c.offset
	if c.state == StatePlaying {
		pos = pos.Add(model.FromDuration(c.now().Sub(c.startedAt)))
	}
	return pos.Clamp(c.total)
}
