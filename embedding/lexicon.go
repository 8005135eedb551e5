package embedding

import (
	"bufio"
	"io"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// LoadLexicon reads a plain-text lexicon (one word per line, blank lines
// and #-comments ignored) and returns a bitmap of the vocabulary indices of
// the words present in kv. The bitmap can be passed to MostSimilar or
// Wrapper.SetAllow to restrict neighbor results to the lexicon.
//
// The number of lexicon words missing from the vocabulary is also returned.
func LoadLexicon(r io.Reader, kv *KeyedVectors) (*roaring.Bitmap, int, error) {
	allow := roaring.New()
	missing := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word := Normalize(line)
		if word == "" {
			continue
		}

		id, ok := kv.Lookup(word)
		if !ok {
			missing++
			continue
		}
		allow.Add(uint32(id))
	}
	if err := sc.Err(); err != nil {
		return nil, 0, err
	}

	return allow, missing, nil
}
