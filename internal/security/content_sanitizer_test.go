package security

import (
	"strings"
	"testing"
)

// TestSanitize_PlainTextUnchanged はHTMLを含まないテキストがそのまま返ることを検証する。
func TestSanitize_PlainTextUnchanged(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []string{
		"Hello, I would like a quote for cloud migration.",
		"お見積もりをお願いします。",
		"Line 1\nLine 2",
		"Tom & Jerry",
		"1 < 2 and 3 > 2",
	}

	for _, input := range tests {
		if got := sanitizer.Sanitize(input); got != input {
			t.Errorf("Sanitize(%q) = %q, want unchanged", input, got)
		}
	}
}

// TestSanitize_StripsTags はすべてのHTMLタグが除去されテキストだけが残ることを検証する。
func TestSanitize_StripsTags(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"段落タグ", "<p>Hello</p>", "Hello"},
		{"強調タグ", "We need <strong>5G</strong> rollout", "We need 5G rollout"},
		{"リンク", `<a href="https://example.com">site</a>`, "site"},
		{"画像", `<img src="https://example.com/x.png" alt="x">hi`, "hi"},
		{"イベント属性", `<div onclick="alert(1)">click</div>`, "click"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizer.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitize_RemovesScriptAndStyle はscriptとstyle要素が中身ごと除去されることを検証する。
func TestSanitize_RemovesScriptAndStyle(t *testing.T) {
	sanitizer := NewContentSanitizer()

	input := `Hi<script>alert("xss")</script><style>body{display:none}</style> there`
	got := sanitizer.Sanitize(input)

	for _, forbidden := range []string{"<script", "alert", "<style", "display:none"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("Sanitize() result contains %q: %q", forbidden, got)
		}
	}
	if !strings.Contains(got, "Hi") || !strings.Contains(got, "there") {
		t.Errorf("Sanitize() = %q, want surrounding text kept", got)
	}
}

// TestSanitize_OnlyMarkupBecomesEmpty はタグのみの入力が空文字列になることを検証する。
func TestSanitize_OnlyMarkupBecomesEmpty(t *testing.T) {
	sanitizer := NewContentSanitizer()

	for _, input := range []string{"", "   ", "<b></b>", "<script>alert(1)</script>", "<br/><br/>"} {
		if got := sanitizer.Sanitize(input); got != "" {
			t.Errorf("Sanitize(%q) = %q, want empty", input, got)
		}
	}
}

// TestSanitize_Idempotent は同一入力に対して同一出力を返し、再サニタイズしても変わらないことを検証する。
func TestSanitize_Idempotent(t *testing.T) {
	sanitizer := NewContentSanitizer()

	input := "<p>Please contact <em>sales</em></p>"
	first := sanitizer.Sanitize(input)
	second := sanitizer.Sanitize(input)
	again := sanitizer.Sanitize(first)

	if first != second {
		t.Errorf("Sanitize not deterministic: %q vs %q", first, second)
	}
	if first != again {
		t.Errorf("Sanitize not idempotent: %q vs %q", first, again)
	}
}

// TestSanitize_ImplementsInterface はcontentSanitizerがインターフェースを実装することを検証する。
func TestSanitize_ImplementsInterface(t *testing.T) {
	var _ ContentSanitizerService = NewContentSanitizer()
}
