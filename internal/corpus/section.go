package corpus

import "strings"

// Section is a contiguous span of a document delimited by a markdown heading.
// Sections form a flat ordered sequence with level tags; extraction only ever
// needs the nearest enclosing heading, so no tree is built.
type Section struct {
	Heading   string
	Level     int // 0 for preamble text before the first heading
	Body      string
	StartLine int // 1-based line of the heading (or first body line for preamble)
	EndLine   int // 1-based line of the last body line
}

// SplitSections splits markdown text into heading-delimited sections.
// Text before the first heading becomes a level-0 section with an empty
// heading. Headings inside fenced code blocks are treated as body text.
func SplitSections(text string) []Section {
	lines := strings.Split(text, "\n")

	var sections []Section
	current := Section{StartLine: 1}
	var body []string
	inFence := false

	flush := func(endLine int) {
		current.Body = strings.TrimRight(strings.Join(body, "\n"), "\n")
		current.EndLine = endLine
		if current.Heading != "" || strings.TrimSpace(current.Body) != "" {
			sections = append(sections, current)
		}
		body = body[:0]
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		level, heading := headingLine(line)
		if level > 0 && !inFence {
			flush(i)
			current = Section{Heading: heading, Level: level, StartLine: i + 1}
			continue
		}
		body = append(body, line)
	}
	flush(len(lines))

	return sections
}

// headingLine parses an ATX markdown heading, returning its level and text.
// A zero level means the line is not a heading.
func headingLine(line string) (int, string) {
	trimmed := strings.TrimLeft(line, " ")
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, ""
	}
	rest := trimmed[level:]
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		return 0, ""
	}
	return level, strings.TrimSpace(rest)
}
