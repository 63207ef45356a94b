package drum808

import (
	"math"
	"strconv"
	"strings"
)

var noteSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// NoteFrequency resolves a note name like "E1", "C#2" or "Bb0" to its equal
// temperament frequency in Hz (A4 = 440). Unrecognized names fall back to
// E1, the canonical 808 kick pitch.
func NoteFrequency(name string) float64 {
	const e1 = 41.2034446141087
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return e1
	}
	semi, ok := noteSemitones[s[0]&^0x20]
	if !ok {
		return e1
	}
	rest := s[1:]
	switch rest[0] {
	case '#':
		semi++
		rest = rest[1:]
	case 'b':
		semi--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return e1
	}
	midi := (octave+1)*12 + semi
	return 440 * math.Pow(2, float64(midi-69)/12)
}
