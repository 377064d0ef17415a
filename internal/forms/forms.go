// Package forms binds the project edit form to project records.
package forms

import (
	"net/url"
	"strings"

	"kv.dev/portfolio/internal/catalog"
	"kv.dev/portfolio/internal/models"
)

// Form field names
const (
	FieldTitle             = "title"
	FieldDescription       = "description"
	FieldLink              = "link"
	FieldTags              = "tags"
	FieldImageID           = "imageId"
	FieldImageWebp         = "imageWebp"
	FieldImageWebpType     = "imageWebpType"
	FieldImageFallback     = "imageFallback"
	FieldImageFallbackType = "imageFallbackType"
	FieldAlt               = "alt"
)

// Defaults applied when a field is left blank
const (
	DefaultLink         = "#"
	DefaultWebpType     = "image/webp"
	DefaultFallbackType = "image/jpg"
)

// Values is the string state of every bound field plus the status line
type Values struct {
	Title             string
	Description       string
	Link              string
	Tags              string
	ImageID           string
	ImageWebp         string
	ImageWebpType     string
	ImageFallback     string
	ImageFallbackType string
	Alt               string
	Status            string
}

// ParseTags splits a comma separated list, trimming entries and dropping empties
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Read builds a project from submitted form values. When existing is given and
// the form carries no thumbnail selection, the existing thumbnail is kept.
func Read(form url.Values, existing *models.Project) models.Project {
	p := models.Project{
		Title:       field(form, FieldTitle),
		Description: field(form, FieldDescription),
		Link:        field(form, FieldLink),
		Tags:        ParseTags(form.Get(FieldTags)),
	}
	if p.Link == "" {
		p.Link = DefaultLink
	}

	p.Thumbnail = readThumbnail(form)
	if p.Thumbnail.IsZero() && existing != nil {
		p.Thumbnail = existing.Thumbnail
	}
	return p
}

func readThumbnail(form url.Values) models.Thumbnail {
	if key := field(form, FieldImageID); key != "" {
		if _, ok := catalog.LookupImage(key); ok {
			return models.Thumbnail{LibraryKey: key}
		}
	}

	webp := field(form, FieldImageWebp)
	fallback := field(form, FieldImageFallback)
	if webp == "" && fallback == "" {
		return models.Thumbnail{}
	}

	pair := &models.ImagePair{
		WebpSrc:      webp,
		WebpType:     field(form, FieldImageWebpType),
		FallbackSrc:  fallback,
		FallbackType: field(form, FieldImageFallbackType),
		Alt:          field(form, FieldAlt),
	}
	if pair.WebpType == "" {
		pair.WebpType = DefaultWebpType
	}
	if pair.FallbackType == "" {
		pair.FallbackType = DefaultFallbackType
	}
	return models.Thumbnail{Image: pair}
}

// Write fills every field from a project, substituting blanks for missing values
func Write(p models.Project) Values {
	v := Reset()
	v.Title = p.Title
	v.Description = p.Description
	v.Link = p.Link
	v.Tags = strings.Join(p.Tags, ", ")
	v.ImageID = p.Thumbnail.LibraryKey

	if img := p.Thumbnail.Image; img != nil {
		v.ImageWebp = img.WebpSrc
		v.ImageFallback = img.FallbackSrc
		v.Alt = img.Alt
		if img.WebpType != "" {
			v.ImageWebpType = img.WebpType
		}
		if img.FallbackType != "" {
			v.ImageFallbackType = img.FallbackType
		}
	}
	return v
}

// Echo returns the submitted values unchanged so a rejected form can be shown again
func Echo(form url.Values) Values {
	v := Values{
		Title:             form.Get(FieldTitle),
		Description:       form.Get(FieldDescription),
		Link:              form.Get(FieldLink),
		Tags:              form.Get(FieldTags),
		ImageID:           form.Get(FieldImageID),
		ImageWebp:         form.Get(FieldImageWebp),
		ImageWebpType:     form.Get(FieldImageWebpType),
		ImageFallback:     form.Get(FieldImageFallback),
		ImageFallbackType: form.Get(FieldImageFallbackType),
		Alt:               form.Get(FieldAlt),
	}
	if v.ImageWebpType == "" {
		v.ImageWebpType = DefaultWebpType
	}
	if v.ImageFallbackType == "" {
		v.ImageFallbackType = DefaultFallbackType
	}
	return v
}

// Reset returns a cleared form
func Reset() Values {
	return Values{
		ImageWebpType:     DefaultWebpType,
		ImageFallbackType: DefaultFallbackType,
	}
}

func field(form url.Values, name string) string {
	return strings.TrimSpace(form.Get(name))
}
