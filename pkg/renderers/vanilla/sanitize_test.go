package vanilla

import "testing"

func TestSanitizeInline(t *testing.T) {
	cases := map[string]string{
		"":                                   "",
		"  Plain title  ":                    "Plain title",
		"<strong>Bold</strong> <i>it</i>":    "<strong>Bold</strong> <i>it</i>",
		`<a href="https://x.test">link</a>`:  "link",
		"<script>alert(1)</script>Safe":      "Safe",
		`<code class="lang">x &lt; y</code>`: `<code class="lang">x &lt; y</code>`,
	}
	for input, want := range cases {
		if got := sanitizeInline(input); got != want {
			t.Errorf("sanitizeInline(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSafeURL(t *testing.T) {
	cases := map[string]string{
		"":                                "",
		"https://example.com/a.png":       "https://example.com/a.png",
		"http://example.com/a.png":        "http://example.com/a.png",
		"/wp-admin/post.php?post=1":       "/wp-admin/post.php?post=1",
		"thumbs/a.png":                    "thumbs/a.png",
		"javascript:alert(1)":             "",
		"JavaScript:alert(1)":             "",
		"data:image/png;base64,AAAA":      "",
		"//cdn.example.com/a.png":         "",
		"https:///missing-host":           "",
		"  https://example.com/trim  ":    "https://example.com/trim",
	}
	for input, want := range cases {
		if got := safeURL(input); got != want {
			t.Errorf("safeURL(%q) = %q, want %q", input, got, want)
		}
	}
}
