package lyrics

import (
	"testing"

	"github.com/google/uuid"

	"github.com/patrickprogramme/babelplayer/pkg/model"
)

// buildTwoSegmentDoc returns a document with one line holding two timed
// segments ("Hello" 0-500ms, "World" 500-1000ms) and no languages.
func buildTwoSegmentDoc(t *testing.T) (*Document, *Editor) {
	t.Helper()
	doc := NewDocument()
	ed := NewEditor(doc)
	li := ed.AddLine()
	ed.InsertSegment(li, 0)
	ed.InsertSegment(li, 1)
	line := &doc.Lyrics.Lines[li]
	line.Begin = 0
	line.End = 1000
	line.Original[0].Begin = 0
	line.Original[0].End = 500
	line.Original[0].Text = "Hello"
	line.Original[1].Begin = 500
	line.Original[1].End = 1000
	line.Original[1].Text = "World"
	return doc, ed
}

func countEntries(line *Line, id uuid.UUID) (lineEntries, segEntries, segsWithOne int) {
	for _, t := range line.Translations {
		if t.LanguageID == id {
			lineEntries++
		}
	}
	for si := range line.Original {
		n := 0
		for _, t := range line.Original[si].Translations {
			if t.LanguageID == id {
				n++
			}
		}
		segEntries += n
		if n == 1 {
			segsWithOne++
		}
	}
	return
}

// --- AddLanguage / RemoveLanguage ------------------------------------------

func TestAddLanguage_EveryLineAndSegmentGetsExactlyOneEntry(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	// a second line, added before the language, must get the entry too
	ed.AddLine()
	ed.InsertSegment(1, 0)

	id := ed.AddLanguage("es")

	if got := len(doc.Metadata.Translations); got != 1 {
		t.Fatalf("registered languages = %d; want 1", got)
	}
	for li := range doc.Lyrics.Lines {
		line := &doc.Lyrics.Lines[li]
		lineN, _, segsOK := countEntries(line, id)
		if lineN != 1 {
			t.Errorf("line %d: %d entries for language; want exactly 1", li, lineN)
		}
		if segsOK != len(line.Original) {
			t.Errorf("line %d: %d/%d segments with exactly one entry", li, segsOK, len(line.Original))
		}
	}

	// lines and segments created after registration get the entry as well
	li := ed.AddLine()
	ed.InsertSegment(li, 0)
	line := &doc.Lyrics.Lines[li]
	lineN, segN, _ := countEntries(line, id)
	if lineN != 1 || segN != 1 {
		t.Errorf("post-registration line: lineEntries=%d segEntries=%d; want 1/1", lineN, segN)
	}
}

func TestRemoveLanguage_NoEntryRemains(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	es := ed.AddLanguage("es")
	fr := ed.AddLanguage("fr")

	ed.RemoveLanguage(es)

	if _, ok := doc.LanguageName(es); ok {
		t.Fatalf("language still registered after RemoveLanguage")
	}
	for li := range doc.Lyrics.Lines {
		line := &doc.Lyrics.Lines[li]
		lineN, segN, _ := countEntries(line, es)
		if lineN != 0 || segN != 0 {
			t.Errorf("line %d: stale entries after removal: line=%d seg=%d", li, lineN, segN)
		}
		// the other language must be untouched
		lineN, _, segsOK := countEntries(line, fr)
		if lineN != 1 || segsOK != len(line.Original) {
			t.Errorf("line %d: surviving language damaged: line=%d segsOK=%d", li, lineN, segsOK)
		}
	}

	// unknown id is a silent no-op
	ed.RemoveLanguage(uuid.New())
	if got := len(doc.Metadata.Translations); got != 1 {
		t.Fatalf("languages after no-op removal = %d; want 1", got)
	}
}

// --- RemoveTranslationWord index maintenance -------------------------------

func TestRemoveTranslationWord_ShiftsSegmentAssociations(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	es := ed.AddLanguage("es")

	// line translation ["Hola", "Mundo", "!"]
	for i, w := range []string{"Hola", "Mundo", "!"} {
		ed.AddTranslationWord(0, es)
		ed.SetTranslationWord(0, es, i, w)
	}
	// Hello -> [0], World -> [1, 2]
	ed.SetWordAssociation(0, 0, es, 0, true)
	ed.SetWordAssociation(0, 1, es, 1, true)
	ed.SetWordAssociation(0, 1, es, 2, true)

	ed.RemoveTranslationWord(0, es, 0)

	line := &doc.Lyrics.Lines[0]
	words := line.Translation(es).Words
	if len(words) != 2 || words[0] != "Mundo" || words[1] != "!" {
		t.Fatalf("words after removal = %#v; want [Mundo !]", words)
	}
	// Hello's association to the removed word is gone
	if got := line.Original[0].Translation(es).WordIndexes; len(got) != 0 {
		t.Errorf("Hello associations = %v; want empty", got)
	}
	// World's indexes 1,2 decremented to 0,1
	got := line.Original[1].Translation(es).WordIndexes
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("World associations = %v; want [0 1]", got)
	}
}

func TestRemoveTranslationWord_IndexBelowRemovalUnchanged(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	es := ed.AddLanguage("es")
	for i := 0; i < 3; i++ {
		ed.AddTranslationWord(0, es)
	}
	ed.SetWordAssociation(0, 0, es, 0, true)
	ed.SetWordAssociation(0, 0, es, 2, true)

	ed.RemoveTranslationWord(0, es, 1)

	got := doc.Lyrics.Lines[0].Original[0].Translation(es).WordIndexes
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("associations = %v; want [0 1] (0 unchanged, 2 shifted)", got)
	}
}

func TestRemoveTranslationWord_OutOfRangeIsNoOp(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	es := ed.AddLanguage("es")
	ed.AddTranslationWord(0, es)

	ed.RemoveTranslationWord(0, es, 5)
	ed.RemoveTranslationWord(0, es, -1)
	ed.RemoveTranslationWord(7, es, 0)
	ed.RemoveTranslationWord(0, uuid.New(), 0)

	if got := len(doc.Lyrics.Lines[0].Translation(es).Words); got != 1 {
		t.Fatalf("word list length = %d; want 1 (all ops should be no-ops)", got)
	}
}

// --- SetWordAssociation ----------------------------------------------------

func TestSetWordAssociation_IdempotentAdd(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	es := ed.AddLanguage("es")
	ed.AddTranslationWord(0, es)

	ed.SetWordAssociation(0, 0, es, 0, true)
	once := append([]int(nil), doc.Lyrics.Lines[0].Original[0].Translation(es).WordIndexes...)
	ed.SetWordAssociation(0, 0, es, 0, true)
	twice := doc.Lyrics.Lines[0].Original[0].Translation(es).WordIndexes

	if len(once) != 1 || len(twice) != 1 || once[0] != twice[0] {
		t.Fatalf("toggle add not idempotent: once=%v twice=%v", once, twice)
	}

	// removing a never-added index is a no-op
	ed.SetWordAssociation(0, 0, es, 3, false)
	if got := doc.Lyrics.Lines[0].Original[0].Translation(es).WordIndexes; len(got) != 1 {
		t.Fatalf("associations = %v; want [0]", got)
	}

	ed.SetWordAssociation(0, 0, es, 0, false)
	if got := doc.Lyrics.Lines[0].Original[0].Translation(es).WordIndexes; len(got) != 0 {
		t.Fatalf("associations after removal = %v; want empty", got)
	}
}

// --- Segment ordering ------------------------------------------------------

func TestInsertThenMoveSegment_Ordering(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t) // [Hello, World]

	ed.InsertSegment(0, 1) // [Hello, new, World]
	line := &doc.Lyrics.Lines[0]
	if got := []string{line.Original[0].Text, line.Original[1].Text, line.Original[2].Text}; got[0] != "Hello" || got[1] != "" || got[2] != "World" {
		t.Fatalf("after insert at 1: %v; want [Hello, '', World]", got)
	}

	ed.MoveSegment(0, 1, 0) // swap -> [new, Hello, World]
	if got := []string{line.Original[0].Text, line.Original[1].Text, line.Original[2].Text}; got[0] != "" || got[1] != "Hello" || got[2] != "World" {
		t.Fatalf("after move(1,0): %v; want ['', Hello, World]", got)
	}
}

func TestInsertSegment_ClampsPastEnd(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	ed.InsertSegment(0, 99)
	line := &doc.Lyrics.Lines[0]
	if len(line.Original) != 3 || line.Original[2].Text != "" {
		t.Fatalf("insert past end should append; got %d segments, last=%q",
			len(line.Original), line.Original[len(line.Original)-1].Text)
	}
	// inserted segment carries one empty entry per registered language
	es := ed.AddLanguage("es")
	ed.InsertSegment(0, -5)
	if doc.Lyrics.Lines[0].Original[0].Translation(es) == nil {
		t.Fatalf("inserted segment missing entry for registered language")
	}
}

func TestMoveSegment_OutOfRangeIsNoOp(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	ed.MoveSegment(0, 0, 5)
	ed.MoveSegment(0, -1, 1)
	line := &doc.Lyrics.Lines[0]
	if line.Original[0].Text != "Hello" || line.Original[1].Text != "World" {
		t.Fatalf("order changed by out-of-range move: [%s %s]", line.Original[0].Text, line.Original[1].Text)
	}
}

func TestRemoveSegment(t *testing.T) {
	doc, ed := buildTwoSegmentDoc(t)
	ed.RemoveSegment(0, 0)
	line := &doc.Lyrics.Lines[0]
	if len(line.Original) != 1 || line.Original[0].Text != "World" {
		t.Fatalf("after removal: %d segments, first=%q; want 1, World", len(line.Original), line.Original[0].Text)
	}
	ed.RemoveSegment(0, 9) // no-op
	if len(line.Original) != 1 {
		t.Fatalf("out-of-range removal not a no-op")
	}
}

// --- AddLine ---------------------------------------------------------------

func TestAddLine_FreshUUIDAndLanguageEntries(t *testing.T) {
	doc := NewDocument()
	ed := NewEditor(doc)
	es := ed.AddLanguage("es")

	a := ed.AddLine()
	b := ed.AddLine()

	la, lb := &doc.Lyrics.Lines[a], &doc.Lyrics.Lines[b]
	if la.UUID == uuid.Nil || lb.UUID == uuid.Nil {
		t.Fatalf("AddLine must assign a fresh UUID")
	}
	if la.UUID == lb.UUID {
		t.Fatalf("two lines share a UUID")
	}
	if la.Begin != model.Millis(0) || la.End != model.Millis(0) {
		t.Fatalf("new line bounds = %v-%v; want zero duration", la.Begin, la.End)
	}
	if la.Translation(es) == nil || lb.Translation(es) == nil {
		t.Fatalf("new line missing entry for registered language")
	}
}
