// Package page renders the static love page for a submission and owns the
// section-visibility rules shared by the renderer and the JSON API.
package page

import (
	"html/template"
	"regexp"
	"strings"
)

const DefaultAccent = "#be185d"

// PackageBasic and friends are the three sellable tiers. Anything
// unrecognised is treated as basic.
const (
	PackageBasic    = "basic"
	PackagePremium  = "premium"
	PackageUltimate = "ultimate"
)

type PageData struct {
	SenderName           string
	PartnerName          string
	Relationship         string
	RelationshipDuration string
	FirstEncounter       string
	LoveMessage          string
	SurpriseTime         string
	LoveStoryNotes       string
	PageColor            string
	PackageID            string
	Images               []string
	Videos               []string
	Music                string
}

// Sections says which optional blocks a page shows. The JSON API embeds it
// so clients render from the same flags the static page was built with.
type Sections struct {
	Photos    bool `json:"photos"`
	Videos    bool `json:"videos"`
	Music     bool `json:"music"`
	LoveStory bool `json:"loveStory"`
}

// Visibility is the single source of truth for tier gating.
func Visibility(packageID string, imageCount, videoCount int, hasMusic, hasNotes bool) Sections {
	if packageID == "" {
		packageID = PackageBasic
	}
	return Sections{
		Photos:    packageID != PackageBasic && imageCount > 0,
		Videos:    packageID == PackageUltimate && videoCount > 0,
		Music:     packageID == PackageUltimate && hasMusic,
		LoveStory: packageID != PackageBasic || hasNotes,
	}
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

// AccentColor returns the page accent, falling back to the default when the
// user-supplied value does not look like a hex color or CSS keyword. The
// value ends up inside a style block, so it is never interpolated raw.
func AccentColor(pageColor string) string {
	pageColor = strings.TrimSpace(pageColor)
	if pageColor == "" || !colorPattern.MatchString(pageColor) {
		return DefaultAccent
	}
	return pageColor
}

type pageView struct {
	Sender         string
	Partner        string
	Relationship   string
	Duration       string
	FirstEncounter string
	SurpriseTime   string
	LoveMessage    string
	StoryText      string
	Accent         template.CSS
	Cover          string
	Images         []string
	Videos         []string
	Music          string
	Sections       Sections
}

// Render maps a submission to a complete standalone HTML document. It is a
// pure function; all user text goes through html/template escaping.
func Render(data PageData) (string, error) {
	sender := fallback(data.SenderName, "Someone")
	partner := fallback(data.PartnerName, "My Love")

	storySeed := data.LoveStoryNotes
	if storySeed == "" {
		storySeed = "From our first encounter, every moment with you has felt like a blessing."
	}
	storyText := sender + " writes: " + storySeed +
		" This page is a reminder of how deep our love has grown."

	cover := ""
	if len(data.Images) > 0 {
		cover = data.Images[0]
	}

	view := pageView{
		Sender:         sender,
		Partner:        partner,
		Relationship:   fallback(data.Relationship, "Our Love"),
		Duration:       fallback(data.RelationshipDuration, "Every day"),
		FirstEncounter: data.FirstEncounter,
		SurpriseTime:   data.SurpriseTime,
		LoveMessage:    data.LoveMessage,
		StoryText:      storyText,
		Accent:         template.CSS("--accent: " + AccentColor(data.PageColor) + ";"),
		Cover:          cover,
		Images:         data.Images,
		Videos:         data.Videos,
		Music:          data.Music,
		Sections:       Visibility(data.PackageID, len(data.Images), len(data.Videos), data.Music != "", data.LoveStoryNotes != ""),
	}

	var b strings.Builder
	if err := pageTemplate.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

var pageTemplate = template.Must(template.New("lovepage").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Partner}}'s Love Page</title>
  <style>
    :root { color-scheme: light; {{.Accent}} }
    * { box-sizing: border-box; }
    body { margin: 0; font-family: "Georgia", serif; background: #fff5f7; color: #3f1a1f; }
    .hero { position: relative; min-height: 55vh; display: grid; place-items: center; text-align: center; padding: 40px 20px; overflow: hidden; }
    .hero img { position: absolute; inset: 0; width: 100%; height: 100%; object-fit: cover; opacity: 0.35; }
    .hero::after { content: ""; position: absolute; inset: 0; background: linear-gradient(135deg, rgba(124, 45, 64, 0.85), rgba(190, 24, 93, 0.6)); }
    .hero-content { position: relative; z-index: 2; max-width: 720px; color: #fff; animation: fadeUp 0.9s ease both; }
    .hero h1 { font-size: 2.5rem; margin-bottom: 12px; }
    .hero p { font-size: 1.1rem; margin: 6px 0; }
    .badge { display: inline-block; padding: 6px 14px; border-radius: 999px; background: rgba(255,255,255,0.2); margin-bottom: 12px; }
    .card { background: #fff; margin: -40px auto 32px; max-width: 840px; border-radius: 24px; padding: 28px; box-shadow: 0 25px 60px rgba(124, 45, 64, 0.2); animation: fadeUp 0.9s ease both; }
    .section-title { font-weight: 700; color: var(--accent); margin-bottom: 8px; }
    .grid { display: grid; gap: 16px; }
    .grid.two { grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); }
    .photo { overflow: hidden; border-radius: 18px; box-shadow: 0 12px 30px rgba(190, 24, 93, 0.2); }
    .photo img { width: 100%; height: 200px; object-fit: cover; display: block; }
    .note { font-style: italic; line-height: 1.6; }
    .floating { position: absolute; font-size: 20px; opacity: 0.7; animation: float 6s ease-in-out infinite; }
    .floating.one { left: 12%; top: 18%; animation-delay: 0.2s; }
    .floating.two { left: 80%; top: 12%; animation-delay: 0.6s; }
    .floating.three { left: 18%; top: 75%; animation-delay: 0.4s; }
    .floating.four { left: 85%; top: 70%; animation-delay: 0.9s; }
    .video-grid { display: grid; gap: 16px; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); }
    .video-grid video { width: 100%; border-radius: 18px; box-shadow: 0 12px 30px rgba(190, 24, 93, 0.2); }
    audio { width: 100%; margin-top: 16px; }
    @keyframes float { 0%, 100% { transform: translateY(0); } 50% { transform: translateY(-12px); } }
    @keyframes fadeUp { from { opacity: 0; transform: translateY(16px); } to { opacity: 1; transform: translateY(0); } }
  </style>
</head>
<body>
  <section class="hero">
    {{if .Cover}}<img src="{{.Cover}}" alt="Love cover" />{{end}}
    <span class="floating one">&#128150;</span>
    <span class="floating two">&#128151;</span>
    <span class="floating three">&#128158;</span>
    <span class="floating four">&#128152;</span>
    <div class="hero-content">
      <span class="badge">For {{.Partner}}</span>
      <h1>{{.Sender}}'s Love Story</h1>
      <p>{{.Relationship}} &middot; {{.Duration}}</p>
    </div>
  </section>
  <section class="card">
    <div class="grid two">
      <div>
        <div class="section-title">First encounter</div>
        <p>{{.FirstEncounter}}</p>
      </div>
      <div>
        <div class="section-title">Surprise moment</div>
        <p>{{.SurpriseTime}}</p>
      </div>
    </div>
    <div style="margin-top: 20px;">
      <div class="section-title">Love note</div>
      <p class="note">{{.LoveMessage}}</p>
    </div>
    {{if .Sections.Music}}<audio controls autoplay loop src="{{.Music}}"></audio>{{end}}
  </section>
  {{if .Sections.LoveStory}}<section class="card" style="margin-top: 0;">
    <div class="section-title">Our love story</div>
    <p class="note">{{.StoryText}}</p>
  </section>{{end}}
  {{if .Sections.Photos}}<section class="card" style="margin-top: 0;">
    <div class="section-title">Memories</div>
    <div class="grid two">{{range .Images}}<div class="photo"><img src="{{.}}" alt="Love memory" /></div>{{end}}</div>
  </section>{{end}}
  {{if .Sections.Videos}}<section class="card" style="margin-top: 0;">
    <div class="section-title">Love clips</div>
    <div class="video-grid">{{range .Videos}}<video src="{{.}}" controls playsinline></video>{{end}}</div>
  </section>{{end}}
</body>
</html>`))
