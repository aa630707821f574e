package mux

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

var sequences = map[string]Key{
	"\x1b[A":  {Type: KeyUp},
	"\x1b[B":  {Type: KeyDown},
	"\x1b[C":  {Type: KeyRight},
	"\x1b[D":  {Type: KeyLeft},
	"\x1bOA":  {Type: KeyUp},
	"\x1bOB":  {Type: KeyDown},
	"\x1bOC":  {Type: KeyRight},
	"\x1bOD":  {Type: KeyLeft},
	"\x1b[H":  {Type: KeyHome},
	"\x1b[F":  {Type: KeyEnd},
	"\x1bOH":  {Type: KeyHome},
	"\x1bOF":  {Type: KeyEnd},
	"\x1b[1~": {Type: KeyHome},
	"\x1b[4~": {Type: KeyEnd},
	"\x1b[3~": {Type: KeyDelete},
	"\x1b[5~": {Type: KeyPgUp},
	"\x1b[6~": {Type: KeyPgDown},
	"\r":      {Type: KeyEnter},
	"\n":      {Type: KeyEnter},
	"\t":      {Type: KeyTab},
	"\x7f":    {Type: KeyBackspace},
	"\x08":    {Type: KeyBackspace},
	"\x03":    {Type: KeyCtrlC},
	"\x1b":    {Type: KeyEsc},
}

// decodeKeys splits one read of raw terminal input into keys. Sequences that
// do not map to a known key are returned in skipped.
func decodeKeys(buf []byte) (keys []Key, skipped [][]byte) {
	for len(buf) > 0 {
		seq, _, n, _ := ansi.DecodeSequence(buf, ansi.NormalState, nil)
		if n <= 0 {
			skipped = append(skipped, buf[:1])
			buf = buf[1:]
			continue
		}
		// SS3 arrows arrive as ESC O followed by the final byte.
		if string(seq) == "\x1bO" && n < len(buf) {
			seq = buf[:n+1]
			n++
		}
		buf = buf[n:]
		if key, ok := keyFromSequence(seq); ok {
			keys = append(keys, key)
			continue
		}
		skipped = append(skipped, seq)
	}
	return keys, skipped
}

func keyFromSequence(seq []byte) (Key, bool) {
	if key, ok := sequences[string(seq)]; ok {
		return key, true
	}
	if len(seq) == 0 || seq[0] < 0x20 || seq[0] == 0x7f {
		return Key{}, false
	}
	r, size := utf8.DecodeRune(seq)
	if r == utf8.RuneError && size <= 1 {
		return Key{}, false
	}
	return RuneKey(r), true
}
