package passage

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// fakeSource generates deterministic verse text for every verse inside its
// bounds, with an optional set of holes to simulate missing verses.
type fakeSource struct {
	chapters map[string]int
	verses   map[string]map[int]int
	holes    map[string]struct{}
}

func (f fakeSource) Name() string { return "testkjv" }

func (f fakeSource) ChapterCount(book string) int { return f.chapters[book] }

func (f fakeSource) LastVerse(book string, ch int) int { return f.verses[book][ch] }

func (f fakeSource) VerseText(book string, ch, v int) (string, bool) {
	if v < 1 || v > f.verses[book][ch] {
		return "", false
	}
	key := fmt.Sprintf("%s %d:%d", book, ch, v)
	if _, gone := f.holes[key]; gone {
		return "", false
	}
	return "(" + key + ")", true
}

var testSource = fakeSource{
	chapters: map[string]int{"John": 21, "Psalms": 150, "Luke": 24, "Habakkuk": 3},
	verses: map[string]map[int]int{
		"John":     {3: 36, 4: 54},
		"Psalms":   {104: 45},
		"Luke":     {1: 80},
		"Habakkuk": {3: 19},
	},
}

func TestAssemble(t *testing.T) {
	res := Assemble("John 3:16-18", testSource)
	if !res.Parsed {
		t.Fatalf("Assemble failed: %s %s", res.Error, res.Message)
	}
	if res.Book != "John" || res.Chapter != 3 {
		t.Errorf("Book/Chapter = %q/%d, want John/3", res.Book, res.Chapter)
	}
	if len(res.Verses) != 3 {
		t.Fatalf("got %d verses, want 3", len(res.Verses))
	}
	for i, v := range res.Verses {
		if want := 16 + i; v.Verse != want {
			t.Errorf("verse %d number = %d, want %d", i, v.Verse, want)
		}
	}
	want := "16 (John 3:16) 17 (John 3:17) 18 (John 3:18)"
	if res.FormattedText != want {
		t.Errorf("FormattedText = %q, want %q", res.FormattedText, want)
	}
	if res.Error != "" || res.Message != "" {
		t.Errorf("success result carries error fields: %q %q", res.Error, res.Message)
	}
}

func TestAssembleOptionalVersesIncluded(t *testing.T) {
	res := Assemble("Luke 1:39-45[46-55]", testSource)
	if !res.Parsed {
		t.Fatalf("Assemble failed: %s %s", res.Error, res.Message)
	}
	if len(res.Verses) != 17 {
		t.Fatalf("got %d verses, want 17", len(res.Verses))
	}
	for _, v := range res.Verses[:7] {
		if v.Optional {
			t.Errorf("verse %d flagged optional, want mandatory", v.Verse)
		}
	}
	for _, v := range res.Verses[7:] {
		if !v.Optional {
			t.Errorf("verse %d not flagged optional", v.Verse)
		}
	}
	// Optional verses format identically to mandatory ones.
	if n := strings.Count(res.FormattedText, "(Luke 1:"); n != 17 {
		t.Errorf("FormattedText contains %d verses, want 17", n)
	}
}

func TestAssembleSuffixExposed(t *testing.T) {
	res := Assemble("Habakkuk 3:2-19a", testSource)
	if !res.Parsed {
		t.Fatalf("Assemble failed: %s %s", res.Error, res.Message)
	}
	last := res.Verses[len(res.Verses)-1]
	if last.Verse != 19 || last.Suffix != "a" {
		t.Errorf("last verse = %+v, want verse 19 with suffix %q", last, "a")
	}
}

func TestAssembleFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  string
	}{
		{"unknown book", "NotABook 1:1", errors.KindUnknownBook},
		{"malformed syntax", "Psalm ::1", errors.KindMalformedSyntax},
		{"empty reference", "", errors.KindMalformedInput},
		{"chapter out of range", "Psalm 151", errors.KindChapterOutOfRange},
		{"verse out of range", "John 3:99", errors.KindVerseOutOfRange},
		{"range order", "John 3:20-16", errors.KindInvalidRangeOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Assemble(tt.input, testSource)
			if res.Parsed {
				t.Fatalf("Assemble(%q) succeeded, want failure", tt.input)
			}
			if res.Error != tt.kind {
				t.Errorf("Error = %q, want %q", res.Error, tt.kind)
			}
			if res.Message == "" {
				t.Error("failure result has empty message")
			}
			if len(res.Verses) != 0 || res.FormattedText != "" {
				t.Errorf("failure result carries verse data: %+v", res)
			}
		})
	}
}

func TestAssembleNoPartialPassages(t *testing.T) {
	src := fakeSource{
		chapters: testSource.chapters,
		verses:   testSource.verses,
		holes:    map[string]struct{}{"John 3:17": {}},
	}
	res := Assemble("John 3:16-18", src)
	if res.Parsed {
		t.Fatal("Assemble succeeded despite missing verse")
	}
	if res.Error != errors.KindVerseNotFound {
		t.Errorf("Error = %q, want %q", res.Error, errors.KindVerseNotFound)
	}
	if !strings.Contains(res.Message, "testkjv") {
		t.Errorf("Message = %q, want version name included", res.Message)
	}
	if len(res.Verses) != 0 {
		t.Errorf("failure result carries %d verses, want none", len(res.Verses))
	}
}

func TestAssembleAll(t *testing.T) {
	refs := []string{"Psalm 104:26-36,37", "NotABook 1:1", "John 3:16"}
	results := AssembleAll(refs, testSource)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if res.Reference != refs[i] {
			t.Errorf("result %d is for %q, want %q", i, res.Reference, refs[i])
		}
	}
	if !results[0].Parsed || len(results[0].Verses) != 12 {
		t.Errorf("result 0 = parsed %v with %d verses, want parsed with 12", results[0].Parsed, len(results[0].Verses))
	}
	if results[1].Parsed || results[1].Error != errors.KindUnknownBook {
		t.Errorf("result 1 = %+v, want UnknownBook failure", results[1])
	}
	if !results[2].Parsed {
		t.Errorf("result 2 failed: %s", results[2].Message)
	}
}

func TestAssembleAllEmpty(t *testing.T) {
	if results := AssembleAll(nil, testSource); len(results) != 0 {
		t.Errorf("got %d results for empty batch, want 0", len(results))
	}
}

func TestResultJSONShape(t *testing.T) {
	raw, err := json.Marshal(Assemble("NotABook 1:1", testSource))
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	for _, key := range []string{"book", "chapter", "verses", "formatted_text"} {
		if _, present := fields[key]; present {
			t.Errorf("failure JSON carries %q", key)
		}
	}
	for _, key := range []string{"reference", "parsed", "error", "message"} {
		if _, present := fields[key]; !present {
			t.Errorf("failure JSON missing %q", key)
		}
	}
}
