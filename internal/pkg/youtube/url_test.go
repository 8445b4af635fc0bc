package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		rawURL string
		want   string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/abc123XYZ_-", "abc123XYZ_-"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/", ""},
		{"https://example.com/watch?x=1", ""},
		{"not a url at all ://", ""},
	}

	for _, c := range cases {
		if got := ExtractVideoID(c.rawURL); got != c.want {
			t.Fatalf("ExtractVideoID(%q) = %q, want %q", c.rawURL, got, c.want)
		}
	}
}
