package models

import "encoding/json"

// ThumbnailKind identifies which branch of a Thumbnail is populated
type ThumbnailKind string

const (
	ThumbnailNone    ThumbnailKind = "none"
	ThumbnailLibrary ThumbnailKind = "library"
	ThumbnailImage   ThumbnailKind = "image"
)

// ImagePair is an explicit webp image with a fallback format
type ImagePair struct {
	WebpSrc      string `json:"webpSrc"`
	WebpType     string `json:"webpType"`
	FallbackSrc  string `json:"fallbackSrc"`
	FallbackType string `json:"fallbackType"`
	Alt          string `json:"alt"`
}

// Thumbnail is either a library image reference or an explicit image pair
type Thumbnail struct {
	LibraryKey string     `json:"libraryKey,omitempty"`
	Image      *ImagePair `json:"image,omitempty"`
}

// Kind reports which branch of the thumbnail is set
func (t Thumbnail) Kind() ThumbnailKind {
	switch {
	case t.LibraryKey != "":
		return ThumbnailLibrary
	case t.Image != nil && (t.Image.WebpSrc != "" || t.Image.FallbackSrc != ""):
		return ThumbnailImage
	default:
		return ThumbnailNone
	}
}

// IsZero reports whether no thumbnail was chosen
func (t Thumbnail) IsZero() bool {
	return t.Kind() == ThumbnailNone
}

// Project represents a portfolio project card
type Project struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Tags        []string  `json:"tags"`
	Thumbnail   Thumbnail `json:"thumbnail"`
}

// legacyProject is the flat record layout of older stored data, still
// served by the remote document.
type legacyProject struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Link              string     `json:"link"`
	Tags              []string   `json:"tags"`
	Thumbnail         *Thumbnail `json:"thumbnail"`
	ImageID           string     `json:"imageId"`
	ImageWebp         string     `json:"imageWebp"`
	ImageWebpType     string     `json:"imageWebpType"`
	ImageFallback     string     `json:"imageFallback"`
	ImageFallbackType string     `json:"imageFallbackType"`
	Alt               string     `json:"alt"`
}

// UnmarshalJSON accepts both the nested thumbnail layout and the flat legacy fields
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw legacyProject
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Project{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Link:        raw.Link,
		Tags:        raw.Tags,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	if raw.Thumbnail != nil {
		p.Thumbnail = *raw.Thumbnail
		return nil
	}

	if raw.ImageID != "" {
		p.Thumbnail.LibraryKey = raw.ImageID
	}
	if raw.ImageWebp != "" || raw.ImageFallback != "" || raw.Alt != "" {
		p.Thumbnail.Image = &ImagePair{
			WebpSrc:      raw.ImageWebp,
			WebpType:     raw.ImageWebpType,
			FallbackSrc:  raw.ImageFallback,
			FallbackType: raw.ImageFallbackType,
			Alt:          raw.Alt,
		}
	}
	return nil
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// IndexOf returns the position of the project with the given ID, or -1
func IndexOf(projects []Project, id string) int {
	if id == "" {
		return -1
	}
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}
