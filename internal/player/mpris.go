package player

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/patrickprogramme/babelplayer/pkg/model"
)

const (
	mprisPath        = "/org/mpris/MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
)

// MPRIS pilote un lecteur audio externe via le bus de session D-Bus.
// Le décodage audio et la sortie son restent entièrement chez le
// collaborateur : ici on ne fait que lire la position/durée et relayer
// play/pause/seek. Les positions MPRIS sont en microsecondes.
type MPRIS struct {
	conn    *dbus.Conn
	service string
}

// ConnectMPRIS se connecte au bus de session et vérifie que le service
// du lecteur répond.
func ConnectMPRIS(service string) (*MPRIS, error) {
	if service == "" {
		return nil, errors.New("empty mpris service name")
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	m := &MPRIS{conn: conn, service: service}
	if _, err := m.Position(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("mpris service %s unreachable: %w", service, err)
	}
	return m, nil
}

// Close ferme la connexion au bus.
func (m *MPRIS) Close() error {
	if m.conn == nil {
		return nil
	}
	return m.conn.Close()
}

func (m *MPRIS) object() dbus.BusObject {
	return m.conn.Object(m.service, mprisPath)
}

func (m *MPRIS) Play() error {
	return m.object().Call(mprisPlayerIface+".Play", 0).Err
}

func (m *MPRIS) Pause() error {
	return m.object().Call(mprisPlayerIface+".Pause", 0).Err
}

// Seek se déplace à pos en relayant un déplacement relatif : la méthode
// MPRIS SetPosition exige le TrackId courant, Seek(delta) n'en a pas
// besoin.
func (m *MPRIS) Seek(pos model.Millis) error {
	cur, err := m.Position()
	if err != nil {
		return err
	}
	deltaMicros := (int64(pos) - int64(cur)) * 1000
	return m.object().Call(mprisPlayerIface+".Seek", 0, deltaMicros).Err
}

// Position lit la propriété Position (microsecondes) du lecteur.
func (m *MPRIS) Position() (model.Millis, error) {
	prop, err := m.object().GetProperty(mprisPlayerIface + ".Position")
	if err != nil {
		return 0, fmt.Errorf("get position property: %w", err)
	}
	micros, ok := prop.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected position type %T", prop.Value())
	}
	if micros < 0 {
		return 0, nil
	}
	return model.Millis(micros / 1000), nil
}

// Total lit la durée du morceau courant depuis les métadonnées MPRIS
// (clé "mpris:length", microsecondes). (0, false) si indisponible.
func (m *MPRIS) Total() (model.Millis, bool) {
	prop, err := m.object().GetProperty(mprisPlayerIface + ".Metadata")
	if err != nil {
		return 0, false
	}
	metadata, ok := prop.Value().(map[string]dbus.Variant)
	if !ok {
		return 0, false
	}
	v, ok := metadata["mpris:length"]
	if !ok {
		return 0, false
	}
	switch n := v.Value().(type) {
	case int64:
		if n <= 0 {
			return 0, false
		}
		return model.Millis(n / 1000), true
	case uint64:
		if n == 0 {
			return 0, false
		}
		return model.Millis(n / 1000), true
	default:
		return 0, false
	}
}

// Playing lit la propriété PlaybackStatus du lecteur.
func (m *MPRIS) Playing() bool {
	prop, err := m.object().GetProperty(mprisPlayerIface + ".PlaybackStatus")
	if err != nil {
		return false
	}
	status, ok := prop.Value().(string)
	return ok && status == "Playing"
}
