package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func refs(urls ...string) []ItemReference {
	out := make([]ItemReference, 0, len(urls))
	for _, u := range urls {
		out = append(out, ItemReference{URL: u})
	}
	return out
}

func TestParseURLListStrictListPreservesOrder(t *testing.T) {
	raw := `["https://www.amazon.com/dp/0441172717","https://www.amazon.com/dp/0593098234","http://example.com/c"]`
	got, outcome := ParseURLListOutcome(raw)
	want := refs("https://www.amazon.com/dp/0441172717", "https://www.amazon.com/dp/0593098234", "http://example.com/c")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if outcome != OutcomeStrict {
		t.Fatalf("expected strict outcome, got %s", outcome)
	}
}

func TestParseURLListFiltersNonURLStrings(t *testing.T) {
	got := ParseURLList(`["http://a.com","not-a-url","http://b.com"]`)
	want := refs("http://a.com", "http://b.com")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseURLListFiltersNonStringElements(t *testing.T) {
	got := ParseURLList(`[42, {"url":"http://x.com"}, null, "ftp://files", "https://ok.com"]`)
	if !reflect.DeepEqual(got, refs("https://ok.com")) {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestParseURLListTruncatesToTen(t *testing.T) {
	urls := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		urls = append(urls, fmt.Sprintf("https://example.com/book%d", i))
	}
	data, _ := json.Marshal(urls)
	got := ParseURLList(string(data))
	if len(got) != MaxItemReferences {
		t.Fatalf("expected %d refs, got %d", MaxItemReferences, len(got))
	}
	if got[0].URL != urls[0] || got[9].URL != urls[9] {
		t.Fatalf("expected the first ten in order, got %v", got)
	}
}

func TestParseURLListFallbackExtraction(t *testing.T) {
	got, outcome := ParseURLListOutcome("See http://x.com/book1 and http://y.com/book2 for details")
	if !reflect.DeepEqual(got, refs("http://x.com/book1", "http://y.com/book2")) {
		t.Fatalf("unexpected result %v", got)
	}
	if outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", outcome)
	}
}

func TestParseURLListFallbackOnPythonStyleList(t *testing.T) {
	got := ParseURLList(`['https://a.com/1', 'https://b.com/2']`)
	if !reflect.DeepEqual(got, refs("https://a.com/1", "https://b.com/2")) {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestParseURLListFallbackOnNonListJSON(t *testing.T) {
	got := ParseURLList(`{"books":["https://a.com/1","https://b.com/2"]}`)
	if !reflect.DeepEqual(got, refs("https://a.com/1", "https://b.com/2")) {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestParseURLListFallbackCapsAtTen(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "item https://example.com/%d\n", i)
	}
	got := ParseURLList(b.String())
	if len(got) != MaxItemReferences {
		t.Fatalf("expected %d refs, got %d", MaxItemReferences, len(got))
	}
	if got[9].URL != "https://example.com/9" {
		t.Fatalf("unexpected tenth match %q", got[9].URL)
	}
}

func TestParseURLListEmptyAndUnusable(t *testing.T) {
	for _, raw := range []string{"", "   \n\t", "no links here", "[]", `["nope"]`} {
		got := ParseURLList(raw)
		if got == nil || len(got) != 0 {
			t.Fatalf("ParseURLList(%q) = %v, want empty non-nil list", raw, got)
		}
	}
}

func TestParseRecordListStrict(t *testing.T) {
	raw := `[{"title":"Dune","author":"Frank Herbert","price":"$9.99"},{"title":"Dune Messiah","isbn":"0593098234"}]`
	got, outcome := ParseRecordListOutcome(raw, false)
	if outcome != OutcomeStrict {
		t.Fatalf("expected strict outcome, got %s", outcome)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if string(got[0]) != `{"title":"Dune","author":"Frank Herbert","price":"$9.99"}` {
		t.Fatalf("expected record to be kept verbatim, got %s", got[0])
	}
}

func TestParseRecordListTruncatesToFifty(t *testing.T) {
	items := make([]map[string]int, 75)
	for i := range items {
		items[i] = map[string]int{"n": i}
	}
	data, _ := json.Marshal(items)
	got := ParseRecordList(string(data))
	if len(got) != MaxRecords {
		t.Fatalf("expected %d records, got %d", MaxRecords, len(got))
	}
	if string(got[49]) != `{"n":49}` {
		t.Fatalf("expected the first fifty in order, got %s", got[49])
	}
}

func TestParseRecordListIsStrictByDefault(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		`{"title":"Dune"}`,
		"null",
		"Here are the details: [{\"title\":\"Dune\"}]",
		"```json\n[{\"title\":\"Dune\"}]\n```",
	} {
		got := ParseRecordList(raw)
		if got == nil || len(got) != 0 {
			t.Fatalf("ParseRecordList(%q) = %v, want empty non-nil list", raw, got)
		}
	}
}

func TestParseRecordListLenientStripsFences(t *testing.T) {
	raw := "```json\n[{\"title\":\"Dune\"},{\"title\":\"Children of Dune\"}]\n```"
	got, outcome := ParseRecordListOutcome(raw, true)
	if outcome != OutcomeLenient {
		t.Fatalf("expected lenient outcome, got %s", outcome)
	}
	if len(got) != 2 || string(got[1]) != `{"title":"Children of Dune"}` {
		t.Fatalf("unexpected records %v", got)
	}

	got, outcome = ParseRecordListOutcome("Sure! [{\"rating\":5}] Enjoy.", true)
	if outcome != OutcomeLenient || len(got) != 1 {
		t.Fatalf("expected prose-wrapped list to decode, got %v (%s)", got, outcome)
	}

	got, outcome = ParseRecordListOutcome("no json at all", true)
	if outcome != OutcomeFailed || len(got) != 0 {
		t.Fatalf("expected failure, got %v (%s)", got, outcome)
	}
}

func TestParseRecordListKeepsNonObjectElements(t *testing.T) {
	got := ParseRecordList(`["great read", 4.5, {"rating": 5}]`)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if string(got[0]) != `"great read"` {
		t.Fatalf("unexpected first record %s", got[0])
	}
}

func TestParseText(t *testing.T) {
	if got := ParseText("  Read Dune first.\n"); got != "Read Dune first." {
		t.Fatalf("unexpected text %q", got)
	}
	if got := ParseText(""); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestURLs(t *testing.T) {
	got := URLs(refs("http://a.com", "http://b.com"))
	if !reflect.DeepEqual(got, []string{"http://a.com", "http://b.com"}) {
		t.Fatalf("unexpected urls %v", got)
	}
}
