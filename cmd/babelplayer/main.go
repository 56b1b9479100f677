package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/patrickprogramme/babelplayer/internal/app"
	"github.com/patrickprogramme/babelplayer/internal/assets"
	"github.com/patrickprogramme/babelplayer/internal/bootstrap"
	"github.com/patrickprogramme/babelplayer/internal/config"
	"github.com/patrickprogramme/babelplayer/internal/fsutil"
	"github.com/patrickprogramme/babelplayer/internal/player"
	"github.com/patrickprogramme/babelplayer/internal/store"
	"github.com/patrickprogramme/babelplayer/internal/ui"
)

type cliFlags struct {
	ConfigPath string
	Lyrics     string
	Convert    string
	Output     string
	Debug      bool
}

func main() {
	flags := parseFlags()

	// emplacement config par défaut : à côté de l'exécutable
	if flags.ConfigPath == "babelplayer.yaml" || flags.ConfigPath == "" {
		if exePath, err := os.Executable(); err == nil {
			flags.ConfigPath = filepath.Join(filepath.Dir(exePath), "babelplayer.yaml")
		}
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		fmt.Fprintf(os.Stderr, "warning: EnsureConfigPresent: %v\n", err)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// mode conversion : pas d'interface, juste TTML -> JSON
	if flags.Convert != "" {
		setupLogging(os.Stderr, flags.Debug)
		if err := convert(cfg, flags.Convert, flags.Output); err != nil {
			log.WithError(err).Fatal("conversion échouée")
		}
		return
	}

	// en mode interactif les journaux vont dans un fichier, le terminal
	// appartient à l'interface
	logFile, err := os.OpenFile(
		filepath.Join(cfg.OutputDir, "babelplayer.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	setupLogging(logFile, flags.Debug)

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := app.NewSession(cfg)
	if path := firstNonEmpty(flags.Lyrics, cfg.LyricsPath); path != "" {
		session.Load(path)
	}

	transport := buildTransport(cfg)
	if closer, ok := transport.(*player.MPRIS); ok {
		defer closer.Close()
	}

	p := tea.NewProgram(
		ui.New(cfg, session, transport),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("interface terminée en erreur")
		fmt.Fprintf(os.Stderr, "ui: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *cliFlags {
	f := &cliFlags{}
	flag.StringVar(&f.ConfigPath, "config", "babelplayer.yaml", "chemin du fichier de configuration")
	flag.StringVar(&f.Lyrics, "lyrics", "", "fichier de paroles à ouvrir (.babel.json ou .ttml)")
	flag.StringVar(&f.Convert, "convert", "", "convertit un fichier TTML en JSON puis quitte")
	flag.StringVar(&f.Output, "o", "", "chemin de sortie du mode conversion")
	flag.BoolVar(&f.Debug, "debug", false, "journaux de débogage")
	flag.Parse()
	return f
}

func setupLogging(out *os.File, debug bool) {
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	}
}

// buildTransport choisit le transport de lecture : le lecteur MPRIS
// configuré s'il répond, sinon l'horloge interne.
func buildTransport(cfg *config.Config) player.Transport {
	if cfg.MprisService == "" {
		return player.NewClock()
	}
	m, err := player.ConnectMPRIS(cfg.MprisService)
	if err != nil {
		log.WithError(err).WithField("service", cfg.MprisService).
			Warn("lecteur MPRIS injoignable, repli sur l'horloge interne")
		return player.NewClock()
	}
	return m
}

// convert importe un TTML et exporte le document au format persisté.
// Sans -o, la sortie va dans le répertoire configuré sous le nom du
// fichier d'entrée assaini.
func convert(cfg *config.Config, in, out string) error {
	doc, err := store.ImportTTML(in)
	if err != nil {
		return err
	}
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out = filepath.Join(cfg.OutputDir, fsutil.SanitizeFilename(base)+".babel.json")
	}
	if err := store.SaveDocument(doc, out); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
