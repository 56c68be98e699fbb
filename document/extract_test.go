package document

import (
	"strings"
	"testing"
)

func TestExtractTextPassthrough(t *testing.T) {
	for _, name := range []string{"notes.txt", "report.md", "prices.csv"} {
		e := ExtractText(name, []byte("soil ph 6.8"))
		if e.Failed() {
			t.Errorf("%s: unexpected extraction failure", name)
		}
		if e.Content != "soil ph 6.8" {
			t.Errorf("%s: content = %q", name, e.Content)
		}
	}
}

func TestExtractTextHTML(t *testing.T) {
	raw := []byte(`<html><head><script>var x = 1;</script></head><body>
		<h1>Soil Report</h1>
		<p>Nitrogen levels are low.</p>
		<div>ignored wrapper text is kept only via inner tags</div>
		<ul><li>Apply urea</li></ul>
	</body></html>`)

	e := ExtractText("report.html", raw)
	if e.Failed() {
		t.Fatalf("extraction failed: %q", e.Content)
	}
	for _, want := range []string{"Soil Report", "Nitrogen levels are low.", "Apply urea"} {
		if !strings.Contains(e.Content, want) {
			t.Errorf("content missing %q:\n%s", want, e.Content)
		}
	}
	if strings.Contains(e.Content, "var x") {
		t.Error("script content must be dropped")
	}
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	e := ExtractText("photo.png", []byte{0x89, 0x50})
	if !e.Failed() {
		t.Fatal("unsupported format must carry the error marker")
	}
	if !strings.Contains(e.Content, ErrorMarker) {
		t.Errorf("content = %q", e.Content)
	}
}

func TestExtractBatchIsolatesFailures(t *testing.T) {
	batch := ExtractBatch(map[string][]byte{
		"a_good.txt": []byte("crop yield data"),
		"b_bad.bin":  []byte{0x00},
		"c_good.md":  []byte("soil data"),
	})

	if len(batch) != 3 {
		t.Fatalf("batch size = %d, want 3", len(batch))
	}
	if batch[0].Failed() || batch[2].Failed() {
		t.Error("healthy files must survive a failing sibling")
	}
	if !batch[1].Failed() {
		t.Error("unsupported file must fail")
	}
}

func TestExcerptBuilder(t *testing.T) {
	b, err := NewExcerptBuilder(40)
	if err != nil {
		t.Fatalf("NewExcerptBuilder: %v", err)
	}

	long := strings.Repeat("soil nitrogen phosphorus potassium fertility ", 100)
	extractions := []Extraction{
		{Filename: "soil.txt", Content: long},
		{Filename: "junk.txt", Content: "ignored"},
	}
	verdicts := []Verdict{
		{IsRelevant: true, Type: TypeSoilReport},
		{IsRelevant: false, Type: TypeIrrelevant},
	}

	out := b.Build(extractions, verdicts)
	if !strings.Contains(out, "--- soil.txt ---") {
		t.Error("excerpt must name its source file")
	}
	if strings.Contains(out, "junk.txt") {
		t.Error("irrelevant documents must be skipped")
	}
	if len(out) >= len(long) {
		t.Error("content over budget must be truncated")
	}
}

func TestExcerptBuilderEmptyInput(t *testing.T) {
	b, err := NewExcerptBuilder(0)
	if err != nil {
		t.Fatalf("NewExcerptBuilder: %v", err)
	}
	if out := b.Build(nil, nil); out != "" {
		t.Errorf("empty batch should yield empty excerpts, got %q", out)
	}
}
