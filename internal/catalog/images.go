// Package catalog holds the fixed tables the site is built from: the vector
// image library, theme presets and the seed project list.
package catalog

import "sort"

// LibraryImage is a predefined vector thumbnail
type LibraryImage struct {
	Key string `json:"key"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// PlaceholderImage is the second source offered for library thumbnails
const PlaceholderImage = "assets/img/placeholder.svg"

const libraryDir = "assets/img/crud-placeholder-imgs/"

var imageLibrary = map[string]LibraryImage{
	"brainstorming":     {Src: libraryDir + "brainstorming-31.svg", Alt: "Vector illustration of a team brainstorming ideas"},
	"camera":            {Src: libraryDir + "camera-4.svg", Alt: "Vector illustration of a camera for media work"},
	"chart":             {Src: libraryDir + "chart-3-50.svg", Alt: "Vector illustration of an analytics chart"},
	"creative-process":  {Src: libraryDir + "creative-process-11.svg", Alt: "Vector illustration of a creative thinking process"},
	"cybersecurity":     {Src: libraryDir + "cybersecurity-98.svg", Alt: "Vector illustration representing cybersecurity"},
	"data-settings":     {Src: libraryDir + "data-settings-58.svg", Alt: "Vector illustration of data and configuration settings"},
	"family":            {Src: libraryDir + "family-1-49.svg", Alt: "Vector illustration of a family"},
	"money":             {Src: libraryDir + "money-12.svg", Alt: "Vector illustration of money and finance"},
	"moving-forward":    {Src: libraryDir + "moving-forward-96.svg", Alt: "Vector illustration of someone moving forward"},
	"report-analysis":   {Src: libraryDir + "report-analysis-2-17.svg", Alt: "Vector illustration of report analysis"},
	"rocket-launch":     {Src: libraryDir + "rocket-launch-61.svg", Alt: "Vector illustration of a rocket launch"},
	"seo":               {Src: libraryDir + "seo-1-13.svg", Alt: "Vector illustration representing SEO"},
	"settings":          {Src: libraryDir + "settings-64.svg", Alt: "Vector illustration of settings and gears"},
	"team-presentation": {Src: libraryDir + "team-presentation-7-18.svg", Alt: "Vector illustration of a team giving a presentation"},
	"video-call":        {Src: libraryDir + "video-call-2-87.svg", Alt: "Vector illustration of a video call"},
}

// LookupImage resolves a library key
func LookupImage(key string) (LibraryImage, bool) {
	img, ok := imageLibrary[key]
	if !ok {
		return LibraryImage{}, false
	}
	img.Key = key
	return img, true
}

// Images returns the library sorted by key, for building pickers
func Images() []LibraryImage {
	out := make([]LibraryImage, 0, len(imageLibrary))
	for key := range imageLibrary {
		img, _ := LookupImage(key)
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
