package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
)

// Randomizer produces the sequence of shape indices. Results are consumed
// modulo 7 through ByIndex, so any int is acceptable. Implementations must
// never block or fail.
type Randomizer interface {
	Next() int
}

// Randomizer kinds accepted by NewRandomizer.
const (
	KindClassic = "classic"
	KindBag     = "bag"
	KindCrypto  = "crypto"
)

// Kinds lists every randomizer kind, in display order.
func Kinds() []string {
	return []string{KindClassic, KindBag, KindCrypto}
}

// NewRandomizer builds a randomizer by kind. The seed is ignored by the
// crypto kind.
func NewRandomizer(kind string, seed int64) (Randomizer, error) {
	switch strings.ToLower(kind) {
	case KindClassic, "":
		return NewClassic(int32(seed)), nil
	case KindBag:
		return NewBag(seed), nil
	case KindCrypto:
		return NewCrypto(), nil
	default:
		return nil, fmt.Errorf("engine: unknown randomizer %q (want one of %s)",
			kind, strings.Join(Kinds(), ", "))
	}
}

// Classic is the arcade cabinet generator: the state is multiplied by 123
// with 32-bit wraparound on every draw. Cheap, reproducible and not very
// random.
type Classic struct {
	state int32
}

// NewClassic seeds a Classic generator. A zero seed would stay zero forever,
// so it is replaced by 1.
func NewClassic(seed int32) *Classic {
	if seed == 0 {
		seed = 1
	}
	return &Classic{state: seed}
}

// Next advances the generator.
func (c *Classic) Next() int {
	c.state *= 123
	return int(c.state)
}

// Bag deals shapes from a shuffled bag of all seven, refilling when empty,
// so every shape appears exactly once per seven draws.
type Bag struct {
	rng *rand.Rand
	bag []int
}

// NewBag creates a seeded 7-bag generator. Equal seeds produce equal
// sequences.
func NewBag(seed int64) *Bag {
	return &Bag{rng: rand.New(rand.NewSource(seed))}
}

// Next draws the next shape index from the bag.
func (b *Bag) Next() int {
	if len(b.bag) == 0 {
		b.refill()
	}
	n := b.bag[0]
	b.bag = b.bag[1:]
	return n
}

// refill loads all seven shapes and shuffles them (Fisher-Yates).
func (b *Bag) refill() {
	b.bag = b.bag[:0]
	for i := range ShapeCount {
		b.bag = append(b.bag, i)
	}
	for i := len(b.bag) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	}
}

// Crypto draws from the operating system's secure random source.
type Crypto struct{}

// NewCrypto returns a Crypto randomizer.
func NewCrypto() Crypto {
	return Crypto{}
}

// Next returns a non-negative random int.
func (Crypto) Next() int {
	var buf [8]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = crand.Read(buf[:])
	return int(binary.LittleEndian.Uint64(buf[:]) >> 1)
}

// Sequence replays a fixed list of indices, cycling when exhausted.
// Used to script deterministic games.
type Sequence struct {
	values []int
	pos    int
}

// NewSequence creates a Sequence over the given indices. An empty list
// always yields 0.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

// Next returns the next scripted index.
func (s *Sequence) Next() int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}
