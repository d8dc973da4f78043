package render

import (
	"regexp"
	"strings"
)

// Slide is one parsed slide of a presentation outline.
type Slide struct {
	Title    string
	Subtitle string
	Bullets  []string
	Notes    string
}

var slideMarker = regexp.MustCompile(`^-{3}\s*Slide:\s*(.*?)\s*-{3}$`)

// Slide attributes the deck writer does not use.
var ignoredSlideKeys = map[string]bool{
	"theme":            true,
	"layout":           true,
	"emphasis":         true,
	"color theme":      true,
	"image suggestion": true,
}

// ParseOutline splits generated slide text into slides. Text without
// "--- Slide: <title> ---" markers is split on markdown headings instead, and
// the deck always starts with a title slide.
func ParseOutline(content, query string) []Slide {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	var slides []Slide
	if hasSlideMarkers(lines) {
		slides = parseMarkedSlides(lines)
	} else {
		slides = parseHeadingSlides(lines)
	}
	if len(slides) == 0 || !isTitleSlide(slides[0]) {
		slides = append([]Slide{{Title: DocumentTitle(content, query)}}, slides...)
	}
	return slides
}

func hasSlideMarkers(lines []string) bool {
	for _, line := range lines {
		if slideMarker.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func isTitleSlide(s Slide) bool {
	return len(s.Bullets) == 0 && s.Title != ""
}

func parseMarkedSlides(lines []string) []Slide {
	var slides []Slide
	var cur *Slide
	inNotes := false
	finish := func() {
		if cur != nil && (cur.Title != "" || len(cur.Bullets) > 0) {
			cur.Notes = strings.TrimSpace(cur.Notes)
			slides = append(slides, *cur)
		}
		cur = nil
	}
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if m := slideMarker.FindStringSubmatch(line); m != nil {
			finish()
			cur = &Slide{Title: m[1]}
			inNotes = false
			continue
		}
		if cur == nil || line == "" || strings.Trim(line, "-") == "" {
			continue
		}
		if key, value, ok := splitAttribute(line); ok {
			inNotes = false
			switch key {
			case "title":
				cur.Title = value
			case "subtitle":
				cur.Subtitle = value
			case "notes":
				cur.Notes = value
				inNotes = true
			}
			continue
		}
		if inNotes {
			cur.Notes += " " + line
			continue
		}
		cur.Bullets = append(cur.Bullets, bulletText(line))
	}
	finish()
	return slides
}

func parseHeadingSlides(lines []string) []Slide {
	var slides []Slide
	var cur *Slide
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if level := headingLevel(line); level > 0 {
			if cur != nil {
				slides = append(slides, *cur)
			}
			cur = &Slide{Title: strings.TrimSpace(line[level:])}
			continue
		}
		if cur == nil {
			cur = &Slide{}
		}
		cur.Bullets = append(cur.Bullets, bulletText(line))
	}
	if cur != nil {
		slides = append(slides, *cur)
	}
	return slides
}

func splitAttribute(line string) (string, string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key := strings.ToLower(strings.TrimSpace(line[:idx]))
	if key != "title" && key != "subtitle" && key != "notes" && !ignoredSlideKeys[key] {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

func bulletText(line string) string {
	for _, prefix := range []string{"• ", "- ", "* ", "•"} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(inlineMarkup.Replace(line[len(prefix):]))
		}
	}
	return strings.TrimSpace(inlineMarkup.Replace(line))
}
