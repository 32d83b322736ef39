package dice

import "math/bits"

// Source is the randomness provider for rolls and random choices.
// Implementations are not required to be safe for concurrent use.
type Source interface {
	Uint32() uint32
}

const (
	chachaRounds = 12
	// blocksPerRefill is the number of 64-byte keystream blocks generated
	// per refill. It does not affect the output sequence.
	blocksPerRefill = 4
	wordsPerBlock   = 16
)

// ChaCha12 is a deterministic Source producing the ChaCha keystream with
// 12 rounds, a 64-bit block counter starting at zero and a zero stream id.
// Words are emitted in little-endian block order.
type ChaCha12 struct {
	key     [8]uint32
	counter uint64
	buf     [blocksPerRefill * wordsPerBlock]uint32
	index   int
}

// NewChaCha12 seeds a ChaCha12 source from a 64-bit seed. The 256-bit key is
// expanded from the seed with a PCG32 generator, one output word per key
// word.
func NewChaCha12(seed uint64) *ChaCha12 {
	c := &ChaCha12{key: expandSeed(seed)}
	c.index = len(c.buf)
	return c
}

// Uint32 returns the next word of the keystream.
func (c *ChaCha12) Uint32() uint32 {
	if c.index >= len(c.buf) {
		c.refill()
	}
	v := c.buf[c.index]
	c.index++
	return v
}

func (c *ChaCha12) refill() {
	for b := 0; b < blocksPerRefill; b++ {
		c.block(c.buf[b*wordsPerBlock : (b+1)*wordsPerBlock])
		c.counter++
	}
	c.index = 0
}

func (c *ChaCha12) block(out []uint32) {
	state := [wordsPerBlock]uint32{
		0x61707865, 0x3320646e, 0x79622d32, 0x6b206574,
		c.key[0], c.key[1], c.key[2], c.key[3],
		c.key[4], c.key[5], c.key[6], c.key[7],
		uint32(c.counter), uint32(c.counter >> 32), 0, 0,
	}
	x := state
	for i := 0; i < chachaRounds; i += 2 {
		// column round
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 1, 5, 9, 13)
		quarterRound(&x, 2, 6, 10, 14)
		quarterRound(&x, 3, 7, 11, 15)
		// diagonal round
		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}
	for i := range out {
		out[i] = x[i] + state[i]
	}
}

func quarterRound(x *[wordsPerBlock]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 7)
}

func expandSeed(state uint64) [8]uint32 {
	const (
		mul = 6364136223846793005
		inc = 11634580027462260723
	)
	var key [8]uint32
	for i := range key {
		state = state*mul + inc
		xorshifted := uint32(((state >> 18) ^ state) >> 27)
		rot := int(state >> 59)
		key[i] = bits.RotateLeft32(xorshifted, -rot)
	}
	return key
}
