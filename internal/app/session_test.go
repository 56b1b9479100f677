package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickprogramme/babelplayer/internal/config"
	"github.com/patrickprogramme/babelplayer/internal/lyrics"
	"github.com/patrickprogramme/babelplayer/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

// pollUntil polls the session until done reports true or the timeout hits.
func pollUntil(t *testing.T, s *Session, done func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.Poll()
		if done() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for session state (state=%d err=%v)", s.State(), s.Err())
}

func writeTestDocument(t *testing.T, dir string) string {
	t.Helper()
	doc := lyrics.NewDocument()
	ed := lyrics.NewEditor(doc)
	ed.AddLine()
	ed.AddLanguage("es")
	path := filepath.Join(dir, "song.babel.json")
	if err := store.SaveDocument(doc, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSession_LoadAppliesDocumentAtPollPoint(t *testing.T) {
	s := NewSession(testConfig(t))
	path := writeTestDocument(t, t.TempDir())

	if !s.Load(path) {
		t.Fatalf("Load returned false on idle session")
	}
	if !s.Loading() {
		t.Fatalf("session not in pending state after Load")
	}
	// a duplicate trigger while in flight must be suppressed
	if s.Load(path) {
		t.Fatalf("duplicate Load accepted while pending")
	}

	pollUntil(t, s, func() bool { return s.State() == LoadSucceeded })

	if len(s.Document().Lyrics.Lines) != 1 || len(s.Document().Metadata.Translations) != 1 {
		t.Fatalf("loaded document wrong shape: %+v", s.Document())
	}
	if s.Path() != path {
		t.Fatalf("Path = %q; want %q", s.Path(), path)
	}
}

func TestSession_FailedLoadLeavesDocumentUntouched(t *testing.T) {
	s := NewSession(testConfig(t))

	// give the session a known document first
	good := writeTestDocument(t, t.TempDir())
	s.Load(good)
	pollUntil(t, s, func() bool { return s.State() == LoadSucceeded })
	before := s.Document()

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s.Load(bad)
	pollUntil(t, s, func() bool { return s.State() == LoadFailed })

	if s.Err() == nil {
		t.Fatalf("failed load must expose an error")
	}
	if s.Document() != before {
		t.Fatalf("failed load replaced the document")
	}
	// the machine is no longer pending: the user can retry
	if s.Loading() {
		t.Fatalf("session stuck in pending after failure")
	}
	if !s.Load(good) {
		t.Fatalf("retry refused after failure")
	}
	pollUntil(t, s, func() bool { return s.State() == LoadSucceeded })
}

func TestSession_LoadTTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.ttml")
	ttmlData := `<tt xmlns="http://www.w3.org/ns/ttml"><body><div>` +
		`<p begin="0.1" end="0.9"><span begin="0.1" end="0.4">Hi</span></p>` +
		`</div></body></tt>`
	if err := os.WriteFile(path, []byte(ttmlData), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSession(testConfig(t))
	s.Load(path)
	pollUntil(t, s, func() bool { return s.State() == LoadSucceeded })

	doc := s.Document()
	if len(doc.Lyrics.Lines) != 1 {
		t.Fatalf("lines = %d; want 1", len(doc.Lyrics.Lines))
	}
	if got := doc.Lyrics.Lines[0].Text(); got != "Hi" {
		t.Fatalf("line text = %q; want Hi", got)
	}
	if len(doc.Metadata.Translations) != 0 {
		t.Fatalf("ttml import must not register languages")
	}
}

func TestSession_SaveRoundTrip(t *testing.T) {
	s := NewSession(testConfig(t))
	ed := s.Editor()
	ed.AddLine()
	ed.AddLanguage("fr")

	out := filepath.Join(t.TempDir(), "out.babel.json")
	if !s.Save(out) {
		t.Fatalf("Save refused on idle session")
	}
	if s.Save(out) {
		t.Fatalf("duplicate Save accepted while in flight")
	}
	pollUntil(t, s, func() bool { return !s.Saving() })
	if s.SaveErr() != nil {
		t.Fatalf("save: %v", s.SaveErr())
	}

	doc, err := store.LoadDocument(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(doc.Lyrics.Lines) != 1 || len(doc.Metadata.Translations) != 1 {
		t.Fatalf("saved document wrong shape")
	}
}

func TestCopyLineText(t *testing.T) {
	doc := lyrics.NewDocument()
	ed := lyrics.NewEditor(doc)
	li := ed.AddLine()
	ed.InsertSegment(li, 0)
	doc.Lyrics.Lines[li].Original[0].Text = "Hello"
	es := ed.AddLanguage("es")
	ed.AddTranslationWord(li, es)
	ed.SetTranslationWord(li, es, 0, "Hola")

	got, err := CopyLineText(doc, li)
	if err != nil {
		t.Fatal(err)
	}
	want := "Hello\nes: Hola"
	if got != want {
		t.Fatalf("CopyLineText = %q; want %q", got, want)
	}

	if _, err := CopyLineText(doc, 7); err == nil {
		t.Fatalf("expected error for missing line")
	}
}
