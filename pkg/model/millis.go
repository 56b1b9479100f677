package model

import (
	"fmt"
	"time"
)

// Millis est une durée non-négative exprimée en millisecondes.
// C'est l'unité de temps de tout le document de paroles : bornes de lignes,
// bornes de segments et position de lecture. Encodée en JSON comme un
// entier (millisecondes), donc le round-trip est exact.
type Millis int64

// FromDuration convertit une time.Duration en Millis (troncature à la ms).
func FromDuration(d time.Duration) Millis {
	if d < 0 {
		return 0
	}
	return Millis(d.Milliseconds())
}

// Duration convertit en time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// Add retourne m + n, borné à zéro (jamais négatif).
func (m Millis) Add(n Millis) Millis {
	r := m + n
	if r < 0 {
		return 0
	}
	return r
}

// Clamp borne m dans [0, max]. Si max <= 0, borne seulement à zéro.
func (m Millis) Clamp(max Millis) Millis {
	if m < 0 {
		return 0
	}
	if max > 0 && m > max {
		return max
	}
	return m
}

// Clock formate en "H:MM:SS.mmm".
// Exemple : 3_661_042 -> "1:01:01.042".
func (m Millis) Clock() string {
	total := int64(m)
	if total < 0 {
		total = 0
	}
	h := total / 3_600_000
	min := (total / 60_000) % 60
	s := (total / 1_000) % 60
	ms := total % 1_000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, min, s, ms)
}

func (m Millis) String() string {
	return m.Clock()
}
