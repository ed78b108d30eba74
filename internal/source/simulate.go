package source

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"livefeed/internal/config"
	"livefeed/internal/feed"
	"livefeed/internal/logger"
)

var adjectives = []string{
	"bad", "bald", "blue", "busy", "cool", "cute", "dark", "dead", "dull", "easy", "evil", "fair",
	"fine", "fit", "good", "hot", "hurt", "ill", "lazy", "odd", "open", "poor", "real", "rich",
	"ripe", "shy", "sore", "sour", "tame", "tart", "vast", "wild", "zany",
}

var animals = []string{
	"alpaca", "ant", "ape", "donkey", "baboon", "badger", "bat", "bear", "beaver", "bee", "beetle",
	"bug", "bull", "camel", "cat", "cicada", "clam", "cod", "coyote", "crab", "crow", "deer",
	"dog", "duck", "eel", "elk", "ferret", "fish", "fly", "fox", "frog", "gerbil", "gnat", "gnu",
	"goat", "hare", "hornet", "horse", "hound", "hyena", "impala", "jackal", "koala", "lion",
	"lizard", "llama", "locust", "louse", "mole", "monkey", "moose", "mouse", "mule", "otter",
	"ox", "oyster", "panda", "pig", "pug", "rabbit", "salmon", "seal", "shark", "sheep", "skunk",
	"snail", "snake", "spider", "swan", "tiger", "trout", "turtle", "walrus", "wasp", "weasel",
	"whale", "wolf", "wombat", "worm", "yak", "zebra",
}

var ipsum = strings.Fields(`Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod
tempor incididunt ut labore et dolore magna aliqua Ut enim ad minim veniam quis nostrud exercitation
ullamco laboris nisi ut aliquip ex ea commodo consequat Duis aute irure dolor in reprehenderit in
voluptate velit esse cillum dolore eu fugiat nulla pariatur Excepteur sint occaecat cupidatat non
proident sunt in culpa qui officia deserunt mollit anim id est laborum`)

// Simulator emits random chatter from a fixed cast.
type Simulator struct {
	cfg      config.Simulate
	rng      *rand.Rand
	chatters []feed.Author
	clock    func() time.Time
	log      *logger.LogEntry
}

// NewSimulator builds the cast. A nil rng uses a random seed.
func NewSimulator(cfg config.Simulate, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Simulator{cfg: cfg, rng: rng, clock: time.Now, log: logger.Named("simulate")}
	s.chatters = s.cast(max(cfg.Chatters, 1))
	return s
}

// Chatters returns the simulated authors.
func (s *Simulator) Chatters() []feed.Author {
	return s.chatters
}

// cast picks n distinct adjective+animal+digits names.
func (s *Simulator) cast(n int) []feed.Author {
	seen := make(map[string]bool, n)
	out := make([]feed.Author, 0, n)
	for len(out) < n {
		var b strings.Builder
		b.WriteString(adjectives[s.rng.IntN(len(adjectives))])
		b.WriteString(animals[s.rng.IntN(len(animals))])
		for i := s.rng.IntN(5); i > 0; i-- {
			b.WriteByte(byte('0' + s.rng.IntN(10)))
		}
		name := b.String()
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, feed.Author{Name: name, Color: feed.Palette[s.rng.IntN(len(feed.Palette))]})
	}
	return out
}

// Next returns one random entry.
func (s *Simulator) Next() feed.Entry {
	author := s.chatters[s.rng.IntN(len(s.chatters))]
	return feed.Entry{Timestamp: s.clock(), Author: author, Text: s.speak()}
}

// speak cycles through the lorem ipsum words, skipping about half of them,
// until the target length is used up. Roughly one message in eight ends
// with a link.
func (s *Simulator) speak() string {
	lo, hi := s.cfg.LengthLower, s.cfg.LengthUpper
	if hi <= lo {
		hi = lo + 1
	}
	budget := max(lo+s.rng.IntN(hi-lo), 1)

	var words []string
	for i := 0; budget > 0; i = (i + 1) % len(ipsum) {
		if s.rng.IntN(2) == 0 {
			continue
		}
		words = append(words, ipsum[i])
		budget -= len(ipsum[i]) + 1
	}
	if s.rng.IntN(8) == 0 {
		words = append(words, fmt.Sprintf("https://example.com/%s/%d", strings.ToLower(words[0]), s.rng.IntN(1000)))
	}
	return strings.Join(words, " ")
}

func (s *Simulator) delay() time.Duration {
	lo, hi := s.cfg.DelayLowerMS, s.cfg.DelayUpperMS
	if hi <= lo {
		return time.Duration(lo) * time.Millisecond
	}
	return time.Duration(lo+s.rng.IntN(hi-lo)) * time.Millisecond
}

// Run sends entries on out at random intervals until ctx ends, then closes
// out and returns ErrSourceClosed.
func (s *Simulator) Run(ctx context.Context, out chan<- feed.Entry) error {
	defer close(out)
	s.log.WithField("chatters", len(s.chatters)).Info("simulated chat started")
	timer := time.NewTimer(s.delay())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ErrSourceClosed
		case <-timer.C:
		}
		if err := send(ctx, out, s.Next()); err != nil {
			return err
		}
		timer.Reset(s.delay())
	}
}
