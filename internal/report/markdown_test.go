package report

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func mustMatch(t *testing.T, text, pattern string) {
	t.Helper()
	if !regexp.MustCompile(pattern).MatchString(text) {
		t.Errorf("markdown output does not match %q:\n%s", pattern, text)
	}
}

func TestBuildMarkdown_Structure(t *testing.T) {
	data, err := BuildMarkdown("https://example.com", fixedResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "# "+DocumentTitle) {
		t.Error("report must open with the document title heading")
	}

	mustMatch(t, text, `\|\s*Website\s*\|\s*https://example\.com\s*\|`)
	mustMatch(t, text, `\|\s*Overall Score\s*\|\s*85/100\s*\|`)
	mustMatch(t, text, `\|\s*Compliance Level\s*\|\s*AA\s*\|`)

	mustMatch(t, text, `\|\s*WCAG Guideline\s*\|\s*Status\s*\|`)
	mustMatch(t, text, `\|\s*Perceivable\s*\|\s*Pass\s*\|`)
	mustMatch(t, text, `\|\s*Understandable\s*\|\s*Fail\s*\|`)

	mustMatch(t, text, `\|\s*Metric\s*\|\s*Value\s*\|`)
	mustMatch(t, text, `\|\s*WCAG Violations\s*\|\s*15\s*\|`)
	mustMatch(t, text, `\|\s*Estimated Fix Time\s*\|\s*2 hours\s*\|`)
	mustMatch(t, text, `\|\s*Keyboard Navigation Issues\s*\|\s*2\s*\|`)
}

func TestBuildMarkdown_OmitsIndustryComparison(t *testing.T) {
	data, err := BuildMarkdown("https://example.com", fixedResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bytes.Contains(data, []byte("Industry")) {
		t.Error("industry comparison must not be rendered")
	}
}

func TestBuildMarkdown_Deterministic(t *testing.T) {
	first, err := BuildMarkdown("https://example.com", fixedResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildMarkdown("https://example.com", fixedResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical inputs must produce identical markdown")
	}
}
