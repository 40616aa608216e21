package model

// Story is the payload returned by GET /api/story. It is built per request
// and never stored.
type Story struct {
	Title  string   `json:"storyTitle"`
	Body   string   `json:"storyBody"`
	Images []string `json:"images"`
}

// Story generation variants.
const (
	VariantSingle = "single" // one call returns title and story
	VariantLegend = "legend" // first call picks location and entity, second writes the story
)

// Image styles accepted by the image provider.
const (
	ImageStyleVivid   = "vivid"
	ImageStyleNatural = "natural"
)

// MaxImageCount bounds the images generated per story.
const MaxImageCount = 4

// StorySettings are the generation knobs that can change at runtime.
type StorySettings struct {
	Variant    string `json:"variant"`
	Strict     bool   `json:"strict"`
	ImageCount int    `json:"imageCount"`
	ImageSize  string `json:"imageSize"`
	ImageStyle string `json:"imageStyle"`
}
