package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir  string `yaml:"output_dir"`  // répertoire des exports JSON
	LyricsPath string `yaml:"lyrics_path"` // fichier de paroles ouvert au lancement (optionnel)

	// Lecture
	MprisService   string `yaml:"mpris_service"`    // service MPRIS du lecteur externe ("" = horloge interne)
	TickIntervalMs int    `yaml:"tick_interval_ms"` // période de rafraîchissement de la résolution
	SyncOffsetMs   int64  `yaml:"sync_offset_ms"`   // décalage appliqué à la position de lecture

	// Rendu
	Colors struct {
		Active  string `yaml:"active"`  // segment/mot actif
		Dim     string `yaml:"dim"`     // mot traduit non associé
		Context string `yaml:"context"` // lignes non actives (contexte passé/à venir)
	} `yaml:"colors"`

	configFilePath string
}

// configuration par défaut (utilisée telle quelle si aucun fichier n'existe)
func defaultConfig() *Config {
	c := &Config{}

	c.OutputDir = "."
	c.LyricsPath = ""

	c.MprisService = ""
	c.TickIntervalMs = 100
	c.SyncOffsetMs = 0

	// palette héritée de la maquette d'origine : actif orange, reste gris
	c.Colors.Active = "214"
	c.Colors.Dim = "245"
	c.Colors.Context = "240"

	return c
}

// Load lit la config depuis path ; si le fichier n'existe pas, les
// valeurs par défaut sont retournées sans erreur (premier lancement).
// Les champs présents dans le YAML écrasent les défauts, les absents
// conservent leur valeur.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "babelplayer.yaml"
	}

	cfg := defaultConfig()
	cfg.configFilePath = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.normalize()
			return cfg, nil
		}
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.OutputDir = filepath.Clean(strings.TrimSpace(c.OutputDir))
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	c.LyricsPath = strings.TrimSpace(c.LyricsPath)
	c.MprisService = strings.TrimSpace(c.MprisService)

	if c.TickIntervalMs <= 0 {
		c.TickIntervalMs = 100
	}

	if c.Colors.Active == "" {
		c.Colors.Active = "214"
	}
	if c.Colors.Dim == "" {
		c.Colors.Dim = "245"
	}
	if c.Colors.Context == "" {
		c.Colors.Context = "240"
	}
}

// TickInterval retourne la période de rafraîchissement sous forme de durée.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}
