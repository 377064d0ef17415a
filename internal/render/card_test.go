package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kv.dev/portfolio/internal/catalog"
	"kv.dev/portfolio/internal/models"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func explicitProject() models.Project {
	return models.Project{
		Title:       "Developer Journal",
		Description: "A *team* project.",
		Link:        "https://example.com/journal",
		Tags:        []string{"HTML", "CSS"},
		Thumbnail: models.Thumbnail{Image: &models.ImagePair{
			WebpSrc:      "assets/img/dj.webp",
			WebpType:     "image/webp",
			FallbackSrc:  "assets/img/dj.png",
			FallbackType: "image/png",
			Alt:          "journal screenshot",
		}},
	}
}

func TestCard_ExplicitImage(t *testing.T) {
	doc := parse(t, string(Card(explicitProject())))

	sources := doc.Find("picture.thumbnail source")
	require.Equal(t, 2, sources.Length())
	assert.Equal(t, "assets/img/dj.webp", sources.Eq(0).AttrOr("srcset", ""))
	assert.Equal(t, "image/webp", sources.Eq(0).AttrOr("type", ""))
	assert.Equal(t, "assets/img/dj.png", sources.Eq(1).AttrOr("srcset", ""))
	assert.Equal(t, "image/png", sources.Eq(1).AttrOr("type", ""))

	img := doc.Find("picture.thumbnail img")
	assert.Equal(t, "assets/img/dj.png", img.AttrOr("src", ""))
	assert.Equal(t, "journal screenshot", img.AttrOr("alt", ""))

	assert.Equal(t, "Developer Journal", doc.Find("article h2").Text())
	assert.Equal(t, "team", doc.Find(".project-description em").Text())
	assert.Equal(t, "https://example.com/journal", doc.Find("article a").AttrOr("href", ""))

	var tags []string
	doc.Find("ul.project-tags li").Each(func(_ int, s *goquery.Selection) {
		tags = append(tags, s.Text())
	})
	assert.Equal(t, []string{"HTML", "CSS"}, tags)
}

func TestCard_LibraryImage(t *testing.T) {
	p := explicitProject()
	p.Thumbnail = models.Thumbnail{LibraryKey: "chart"}
	want, ok := catalog.LookupImage("chart")
	require.True(t, ok)

	doc := parse(t, string(Card(p)))
	sources := doc.Find("picture.thumbnail source")
	assert.Equal(t, want.Src, sources.Eq(0).AttrOr("srcset", ""))
	assert.Equal(t, catalog.PlaceholderImage, sources.Eq(1).AttrOr("srcset", ""))
	assert.Equal(t, want.Alt, doc.Find("picture.thumbnail img").AttrOr("alt", ""))
}

func TestCard_UnknownLibraryKeyFallsBack(t *testing.T) {
	p := explicitProject()
	p.Thumbnail.LibraryKey = "does-not-exist"

	doc := parse(t, string(Card(p)))
	assert.Equal(t, "assets/img/dj.webp", doc.Find("picture.thumbnail source").Eq(0).AttrOr("srcset", ""))
}

func TestCard_NoThumbnail(t *testing.T) {
	doc := parse(t, string(Card(models.Project{Title: "Bare"})))
	assert.Equal(t, 1, doc.Find("picture.thumbnail img").Length())
	assert.Equal(t, "Bare", doc.Find("h2").Text())
	assert.Equal(t, 0, doc.Find("ul.project-tags li").Length())
}

func TestCard_EscapesText(t *testing.T) {
	p := models.Project{
		Title:       `<script>alert("t")</script>`,
		Description: `hello <script>alert("d")</script> <img src=x onerror=alert(1)>`,
		Link:        `javascript:alert(1)`,
		Tags:        []string{`<b>bold</b>`},
		Thumbnail:   models.Thumbnail{Image: &models.ImagePair{FallbackSrc: "x.png", Alt: `" onload="alert(1)`}},
	}

	html := string(Card(p))
	doc := parse(t, html)

	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, 0, doc.Find("[onerror]").Length())
	assert.Equal(t, 0, doc.Find("[onload]").Length())
	assert.Equal(t, 0, doc.Find("ul.project-tags b").Length())
	assert.Equal(t, `<script>alert("t")</script>`, doc.Find("h2").Text(), "title shown literally")
	assert.NotContains(t, doc.Find("article a").AttrOr("href", ""), "javascript:")
}

func TestGrid(t *testing.T) {
	projects := []models.Project{explicitProject(), explicitProject(), explicitProject()}
	projects[1].Title = "Second"

	doc := parse(t, string(Grid(projects)))
	cards := doc.Find("li > project-card")
	require.Equal(t, 3, cards.Length())
	assert.True(t, cards.Eq(0).HasClass("fade-in"))
	assert.Equal(t, "animation-delay: 200ms", cards.Eq(2).AttrOr("style", ""))
	assert.Equal(t, "Second", cards.Eq(1).Find("h2").Text())
}

func TestGrid_Empty(t *testing.T) {
	assert.Empty(t, strings.TrimSpace(string(Grid(nil))))
}

func TestDescription(t *testing.T) {
	assert.Empty(t, Description("  "))
	assert.Contains(t, string(Description("see https://example.com")), `href="https://example.com"`)
	assert.Contains(t, string(Description("see https://example.com")), `rel="nofollow"`)
}
