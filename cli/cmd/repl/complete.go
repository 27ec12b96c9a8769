package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// maxMatches bounds the candidates kept for the completion bar.
const maxMatches = 32

// computeMatches ranks the candidates for input best-first. Paths are
// offered for plain input, command names after ":" until an argument
// starts.
func computeMatches(paths []string, input string) fuzzy.Matches {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	candidates := paths

	if strings.HasPrefix(input, ":") {
		if strings.Contains(input, " ") {
			return nil
		}

		candidates = commands
	}

	matches := fuzzy.Find(input, candidates)
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	return matches
}

// renderCandidateBar renders matches on one line, ellipsized to width. The
// selected candidate is highlighted while tab-cycling.
func renderCandidateBar(matches fuzzy.Matches, selected int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == selected)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && used+w+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters in bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
