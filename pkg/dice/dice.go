// Package dice implements six-sided dice and the deterministic random source
// they are rolled from.
package dice

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// Faces is the number of faces on a die.
const Faces = 6

// Die is the face value of a single rolled die, 1 through 6.
type Die uint8

// Valid reports whether d is a face of a six-sided die.
func (d Die) Valid() bool {
	return d >= 1 && d <= Faces
}

func (d Die) String() string {
	return strconv.Itoa(int(d))
}

// MarshalJSON encodes a die as a number so that slices of dice encode as
// arrays rather than base64 strings.
func (d Die) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(d))), nil
}

// Roll draws one uniformly distributed face from src.
//
// Each call consumes one word from src, or two in the rare case where the
// first word falls in the biased zone.
func Roll(src Source) Die {
	return Die(1 + uniform(src, Faces))
}

// RollN rolls n dice in order.
func RollN(src Source, n int) []Die {
	rolled := make([]Die, n)
	for i := range rolled {
		rolled[i] = Roll(src)
	}
	return rolled
}

// Intn draws a uniformly distributed index in [0, n) from src.
// It panics if n <= 0 or n does not fit in 32 bits.
func Intn(src Source, n int) int {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		panic(fmt.Sprintf("dice: invalid argument to Intn: %d", n))
	}
	return int(uniform(src, uint32(n)))
}

// uniform maps a 32-bit word onto [0, r) with a widening multiply. When the
// low half of the product lands in the zone that would bias the result, a
// second word is drawn and its high half carried into the result.
func uniform(src Source, r uint32) uint32 {
	hi, lo := bits.Mul32(src.Uint32(), r)
	if lo > -r {
		newHi, _ := bits.Mul32(src.Uint32(), r)
		if _, carry := bits.Add32(lo, newHi, 0); carry != 0 {
			hi++
		}
	}
	return hi
}

// Tally counts occurrences of each face. Every face 1 through 6 is present,
// including those with a zero count.
type Tally map[Die]int

// NewTally counts the faces across every group of dice.
func NewTally(groups ...[]Die) Tally {
	tally := make(Tally, Faces)
	for face := Die(1); face <= Faces; face++ {
		tally[face] = 0
	}
	for _, group := range groups {
		for _, d := range group {
			tally[d]++
		}
	}
	return tally
}

// Total returns the number of dice counted.
func (t Tally) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}
