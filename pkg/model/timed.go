package model

// TimedWord est un mot horodaté tel que produit par un parseur externe
// (TTML mot-à-mot). Text peut être " " : les espaces sont des mots à part
// entière dans les formats karaoké.
type TimedWord struct {
	Begin Millis
	End   Millis
	Text  string
}

// TimedLine est une ligne horodatée produite par un parseur externe :
// bornes de la ligne + séquence ordonnée de mots horodatés.
// C'est la structure d'entrée de l'adaptateur d'import (lyrics.FromTimedLines).
type TimedLine struct {
	Begin Millis
	End   Millis
	Agent string
	Words []TimedWord
}

// Text concatène le texte de tous les mots, sans séparateur :
// les espaces éventuels sont déjà des TimedWord.
func (l TimedLine) Text() string {
	var s string
	for _, w := range l.Words {
		s += w.Text
	}
	return s
}
