package timeline

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// The sentence tokenizer loads its English training data once per process.
// The mutex serializes concurrent first calls so the data is never loaded
// twice or observed half-initialized.
var (
	tokenizerMu   sync.Mutex
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerErr  error
	tokenizerDone bool
)

func sentenceTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	tokenizerMu.Lock()
	defer tokenizerMu.Unlock()
	if !tokenizerDone {
		tokenizer, tokenizerErr = english.NewSentenceTokenizer(nil)
		tokenizerDone = true
	}
	return tokenizer, tokenizerErr
}

// splitSentences tokenizes text into trimmed, non-empty sentences.
func splitSentences(text string) ([]string, error) {
	t, err := sentenceTokenizer()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, s := range t.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
