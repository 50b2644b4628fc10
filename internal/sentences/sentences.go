// Package sentences provides the pool of target sentences.
package sentences

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrEmptyPool is returned when a pool has no sentences.
var ErrEmptyPool = errors.New("sentence pool is empty")

var defaultSentences = []string{
	"The quick brown fox jumps over the lazy dog near the riverbank.",
	"Programming languages like JavaScript and Python make development easier for beginners.",
	"Coffee shops around the world serve millions of cups every single morning.",
	"Mountain hiking requires proper equipment, good weather, and strong determination.",
	"Digital technology continues to transform how we communicate and work together.",
	"Fresh vegetables from the garden taste much better than store-bought produce.",
	"Learning to type faster takes consistent practice and proper finger positioning.",
	"Ocean waves crash against the rocky shore while seabirds circle overhead.",
	"Modern smartphones have become essential tools for daily communication and productivity.",
	"Reading books regularly helps expand vocabulary and improve writing skills significantly.",
}

// Defaults returns a copy of the built-in sentences.
func Defaults() []string {
	return append([]string(nil), defaultSentences...)
}

// Pool picks sentences uniformly at random.
type Pool struct {
	mu        sync.Mutex
	rnd       *rand.Rand
	sentences []string
}

// New returns a Pool over sentences using rnd. Sentences are normalized
// and blank ones dropped. A nil rnd is seeded with the current time.
func New(sentences []string, rnd *rand.Rand) (*Pool, error) {
	kept := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = Normalize(s); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyPool
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Pool{
		rnd:       rnd,
		sentences: kept,
	}, nil
}

// NewSeeded returns a Pool whose picks are reproducible for seed.
func NewSeeded(sentences []string, seed int64) (*Pool, error) {
	return New(sentences, rand.New(rand.NewSource(seed)))
}

// Pick returns one sentence. Repeats are allowed.
func (p *Pool) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sentences[p.rnd.Intn(len(p.sentences))]
}

// Sentences returns the pool contents in order.
func (p *Pool) Sentences() []string {
	return append([]string(nil), p.sentences...)
}

// Len returns the number of sentences.
func (p *Pool) Len() int {
	return len(p.sentences)
}
