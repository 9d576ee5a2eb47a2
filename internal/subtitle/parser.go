// Package subtitle turns raw subtitle files into dialogue text and downloads them from OpenSubtitles.
package subtitle

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	blockSeparator   = regexp.MustCompile(`\n[ \t]*\n`)
	sequenceLine     = regexp.MustCompile(`^\d+$`)
	timestampLine    = regexp.MustCompile(`^(\d{1,2}:)?\d{2}:\d{2}[,.]\d{1,3}\s*-->`)
	markupTag        = regexp.MustCompile(`<[^>]+>`)
	styleOverride    = regexp.MustCompile(`\{\\[^}]*\}`)
	musicGlyphs      = regexp.MustCompile(`[♪♫♬♩]`)
	stageDirection   = regexp.MustCompile(`^[\[(][^\])]*[\])]$`)
	speakerLabel     = regexp.MustCompile(`^(-\s*)?[A-Z][A-Z0-9 .'\-]*:\s*`)
	inlineAside      = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	minDialogueRunes = 2
)

// Clean returns the dialogue of an SRT or WebVTT file with one cleaned line per output line.
func Clean(raw string) string {
	var lines []string
	for _, block := range splitBlocks(raw) {
		lines = append(lines, cleanBlock(block)...)
	}
	return strings.Join(lines, "\n")
}

// Paragraphs returns the dialogue grouped into one line per subtitle block.
func Paragraphs(raw string) string {
	var paragraphs []string
	for _, block := range splitBlocks(raw) {
		if lines := cleanBlock(block); len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, " "))
		}
	}
	return strings.Join(paragraphs, "\n")
}

func splitBlocks(raw string) []string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.TrimPrefix(normalized, "\uFEFF")
	trimmed := strings.TrimSpace(normalized)
	if trimmed == "" {
		return nil
	}
	return blockSeparator.Split(trimmed, -1)
}

func cleanBlock(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if cleaned := cleanLine(line); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return lines
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || sequenceLine.MatchString(line) || timestampLine.MatchString(line) {
		return ""
	}
	if strings.HasPrefix(line, "WEBVTT") {
		return ""
	}

	line = markupTag.ReplaceAllString(line, "")
	line = styleOverride.ReplaceAllString(line, "")
	line = musicGlyphs.ReplaceAllString(line, "")
	line = strings.TrimSpace(line)
	if stageDirection.MatchString(line) {
		return ""
	}

	// Asides go first so a label like "WALTER (V.O.):" is still recognized
	line = inlineAside.ReplaceAllString(line, "")
	line = speakerLabel.ReplaceAllString(strings.TrimSpace(line), "")
	line = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))

	if utf8.RuneCountInString(line) < minDialogueRunes || onlyPunctuation(line) {
		return ""
	}
	return line
}

func onlyPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
