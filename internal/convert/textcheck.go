package convert

import (
	"bufio"
	"errors"
	"io"
	"os"
	"unicode"
)

// fileContainsAlnum reports whether the file holds at least one letter or
// digit. The scan stops at the first hit; undecodable bytes come back as
// the replacement rune and simply never match, mirroring a tolerant read.
func fileContainsAlnum(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		ch, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			return true, nil
		}
	}
}
