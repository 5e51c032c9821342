package editor

import "unicode"

// wordBoundary is one word's extent on a line, for w/b motions.
type wordBoundary struct {
	startCol int
	endCol   int // exclusive
}

func wordBoundariesInLine(line string) []wordBoundary {
	var boundaries []wordBoundary
	runes := []rune(line)
	inWord := false
	var start int

	for i, r := range runes {
		isWordChar := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWordChar {
			if !inWord {
				start = i
				inWord = true
			}
		} else if inWord {
			boundaries = append(boundaries, wordBoundary{startCol: start, endCol: i})
			inWord = false
		}
	}
	if inWord {
		boundaries = append(boundaries, wordBoundary{startCol: start, endCol: len(runes)})
	}
	return boundaries
}

// wordNext finds the start of the next word after (x, y), wrapping to
// following lines. With no word left it lands at the end of the last
// line.
func wordNext(buf Buffer, x, y int) (int, int) {
	for line := y; line < buf.LineCount(); line++ {
		minCol := -1
		if line == y {
			minCol = x
		}
		for _, b := range wordBoundariesInLine(buf.Line(line)) {
			if b.startCol > minCol {
				return b.startCol, line
			}
		}
	}
	last := buf.LineCount() - 1
	if last < 0 {
		return 0, 0
	}
	return buf.LineLength(last), last
}

// wordPrev finds the start of the previous word before (x, y),
// wrapping to preceding lines.
func wordPrev(buf Buffer, x, y int) (int, int) {
	for line := y; line >= 0; line-- {
		maxCol := buf.LineLength(line) + 1
		if line == y {
			maxCol = x
		}
		boundaries := wordBoundariesInLine(buf.Line(line))
		for i := len(boundaries) - 1; i >= 0; i-- {
			if boundaries[i].startCol < maxCol {
				return boundaries[i].startCol, line
			}
		}
	}
	return 0, 0
}
