package shell

import (
	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/jobsh/core/ledger"
	"github.com/pkg/errors"
)

// Tokenizer splits input lines into words.
type Tokenizer struct {
	MaxWords   int
	MaxWordLen int
}

// Split breaks line on whitespace. Quotes group words but are kept in them,
// so `echo "a b"` is two words: echo and "a b".
func (t Tokenizer) Split(line string) ([]string, error) {
	words, err := shlex.Split(line, false)
	if err != nil {
		// Quotes are the only syntax in non-POSIX mode.
		return nil, ErrSyntax
	}

	if len(words) > t.MaxWords {
		return nil, errors.Wrapf(ErrTooManyWords, "%d > %d", len(words), t.MaxWords)
	}

	for _, word := range words {
		if len(word) > t.MaxWordLen {
			return nil, errors.Wrapf(ledger.ErrWordTooLong, "%.20q", word)
		}
	}

	return words, nil
}
