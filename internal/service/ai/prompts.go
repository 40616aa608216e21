package ai

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// StoryPrompt asks for a titled story in one call.
const StoryPrompt = `You are a story generator.
1) Produce a short scary story in 100 words or less.
2) Produce a short, compelling title for the story.
Return it in the format:
Title: [title here]
Story: [story here]`

const legendSeedPrompt = `You are a folklore researcher.
Pick one real-world location with a well-known ghost legend and the entity said to haunt it.
Return it in the format:
Location: [location here]
Entity: [entity name here]`

const legendStoryPrompt = `You are a story generator.
1) Produce a short scary story in 100 words or less about %s, the entity said to haunt %s.
2) Produce a short, compelling title for the story.
Return it in the format:
Title: [title here]
Story: [story here]`

// ImageDetailRunes is how much of the story body goes into the image prompt.
const ImageDetailRunes = 100

// GetLegendSeedPrompt returns the first prompt of the legend variant.
// Inspiration lines, when present, are offered as optional starting points.
func GetLegendSeedPrompt(inspiration []string) string {
	lines := make([]string, 0, len(inspiration))
	for _, line := range inspiration {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, "- "+line)
		}
	}
	if len(lines) == 0 {
		return legendSeedPrompt
	}
	return legendSeedPrompt + "\n\nInspiration (optional, recent headlines):\n" + strings.Join(lines, "\n")
}

// GetLegendStoryPrompt returns the second prompt of the legend variant.
func GetLegendStoryPrompt(location, entity string) string {
	return fmt.Sprintf(legendStoryPrompt, entity, location)
}

// GetImagePrompt builds the illustration prompt from the parsed story.
// Newlines are flattened so the prompt is a single line.
func GetImagePrompt(title, body, entity string) string {
	prompt := fmt.Sprintf("Create a creepy, atmospheric illustration for a story titled \"%s\".\nKey details: %s",
		title, TruncateRunes(body, ImageDetailRunes))
	if entity != "" {
		prompt += "\nThe scene features " + entity + "."
	}
	return flatten(prompt)
}

// TruncateRunes returns the first n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
