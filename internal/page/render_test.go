package page

import (
	"strings"
	"testing"
)

func TestRenderEscapesUserText(t *testing.T) {
	html, err := Render(PageData{
		SenderName:  `<script>alert("x")</script>`,
		PartnerName: `Ada & "Bob"`,
		LoveMessage: `I <3 you`,
		PackageID:   PackageBasic,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if strings.Contains(html, "<script>alert") {
		t.Fatal("unescaped script tag in rendered page")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatal("expected escaped script tag in rendered page")
	}
	if !strings.Contains(html, "I &lt;3 you") {
		t.Fatal("expected escaped love message")
	}
	if strings.Contains(html, `Ada & "Bob"`) {
		t.Fatal("expected ampersand and quotes to be escaped")
	}
}

func TestVisibility(t *testing.T) {
	tests := []struct {
		name      string
		packageID string
		images    int
		videos    int
		music     bool
		notes     bool
		want      Sections
	}{
		{
			name:      "basic with images shows nothing extra",
			packageID: "basic",
			images:    3,
			want:      Sections{},
		},
		{
			name:      "premium with images shows photos and story",
			packageID: "premium",
			images:    1,
			want:      Sections{Photos: true, LoveStory: true},
		},
		{
			name:      "premium without images hides gallery",
			packageID: "premium",
			want:      Sections{LoveStory: true},
		},
		{
			name:      "ultimate with music and no videos",
			packageID: "ultimate",
			music:     true,
			want:      Sections{Music: true, LoveStory: true},
		},
		{
			name:      "ultimate with everything",
			packageID: "ultimate",
			images:    2,
			videos:    1,
			music:     true,
			notes:     true,
			want:      Sections{Photos: true, Videos: true, Music: true, LoveStory: true},
		},
		{
			name:      "basic with notes still gets story",
			packageID: "basic",
			notes:     true,
			want:      Sections{LoveStory: true},
		},
		{
			name:   "empty package treated as basic",
			images: 2,
			want:   Sections{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visibility(tt.packageID, tt.images, tt.videos, tt.music, tt.notes)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRenderSectionGating(t *testing.T) {
	basic, err := Render(PageData{
		SenderName:  "Ada",
		PartnerName: "Bob",
		PackageID:   PackageBasic,
		Images:      []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(basic, "Memories") {
		t.Fatal("basic tier must not render the photo gallery")
	}
	if strings.Contains(basic, "Our love story") {
		t.Fatal("basic tier without notes must not render the story section")
	}

	ultimate, err := Render(PageData{
		SenderName:  "Ada",
		PartnerName: "Bob",
		PackageID:   PackageUltimate,
		Music:       "/uploads/song.mp3",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(ultimate, "<audio") {
		t.Fatal("ultimate tier with music must render the audio player")
	}
	if strings.Contains(ultimate, "Love clips") {
		t.Fatal("video section must not render without videos")
	}
}

func TestRenderCoverImage(t *testing.T) {
	html, err := Render(PageData{
		SenderName:  "Ada",
		PartnerName: "Bob",
		PackageID:   PackagePremium,
		Images:      []string{"/uploads/first.jpg", "/uploads/second.jpg"},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, `<img src="/uploads/first.jpg" alt="Love cover" />`) {
		t.Fatal("expected first image as hero cover")
	}
}

func TestRenderStoryFallback(t *testing.T) {
	html, err := Render(PageData{
		SenderName:  "Ada",
		PartnerName: "Bob",
		PackageID:   PackagePremium,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "Ada writes: From our first encounter") {
		t.Fatal("expected synthesized story sentence when no notes given")
	}
}

func TestAccentColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultAccent},
		{"#f43f5e", "#f43f5e"},
		{"#abc", "#abc"},
		{"rebeccapurple", "rebeccapurple"},
		{"url(javascript:alert(1))", DefaultAccent},
		{"#zzz", DefaultAccent},
		{"red; background: url(x)", DefaultAccent},
	}

	for _, tt := range tests {
		if got := AccentColor(tt.in); got != tt.want {
			t.Fatalf("AccentColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderDefaultNames(t *testing.T) {
	html, err := Render(PageData{PackageID: PackageBasic})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "For My Love") {
		t.Fatal("expected default partner name")
	}
	if !strings.Contains(html, "Someone's Love Story") {
		t.Fatal("expected default sender name in heading")
	}
}
