package srt

import (
	"strconv"
	"strings"
)

// Decode parses SRT text back into cues. Parsing is best-effort: blocks that
// do not match the grammar are skipped rather than aborting the decode, and
// empty or fully unparseable input yields an empty (non-nil error-free) list.
//
// Multi-line payloads are joined with a single space before speaker
// extraction. Trailing whitespace and a missing final blank line are
// tolerated.
func Decode(data string) []Cue {
	var cues []Cue
	for _, block := range splitBlocks(data) {
		cue, ok := parseBlock(block)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}
	return cues
}

// splitBlocks cuts the input into line groups separated by blank lines.
func splitBlocks(data string) [][]string {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	var blocks [][]string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// parseBlock parses one cue block: an index line, a timing line, and one or
// more payload lines.
func parseBlock(lines []string) (Cue, bool) {
	if len(lines) < 3 {
		return Cue{}, false
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || index < 1 {
		return Cue{}, false
	}

	start, end, ok := parseTimingLine(lines[1])
	if !ok {
		return Cue{}, false
	}

	parts := make([]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		parts = append(parts, strings.TrimSpace(line))
	}
	payload := strings.Join(parts, " ")
	if payload == "" {
		return Cue{}, false
	}

	speaker, text := ExtractSpeaker(payload)
	return Cue{
		Index:     index,
		Start:     start,
		End:       end,
		SpeakerID: speaker,
		Text:      text,
	}, true
}

// parseTimingLine parses "HH:MM:SS,mmm --> HH:MM:SS,mmm".
func parseTimingLine(line string) (start, end float64, ok bool) {
	left, right, found := strings.Cut(strings.TrimSpace(line), "-->")
	if !found {
		return 0, 0, false
	}

	start, err := ParseTimestamp(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, false
	}
	end, err = ParseTimestamp(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
