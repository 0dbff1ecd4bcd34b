// Package transcript implements the Fiat-Shamir transcript every
// protocol and argument in this module derives its challenges from.
//
// Absorption order is part of each protocol's definition: two
// transcripts fed the same sequence of labelled messages always produce
// the same sequence of challenges, and changing either the order or the
// labels changes every challenge downstream of the change. This is what
// makes the transform sound — a prover cannot choose a commitment after
// seeing the challenge it produces.
package transcript

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/geometryxyz/mental-poker/group"
)

// Transcript accumulates labelled messages and derives labelled
// challenges from them. It is not safe for concurrent use — spec's
// concurrency model runs one transcript per proof on a single
// goroutine.
type Transcript struct {
	g     group.Group
	state [sha256.Size]byte
}

// New starts a transcript bound to a protocol label. Two transcripts
// started with different protocol labels never produce the same
// challenge for the same absorbed messages.
func New(g group.Group, protocolLabel string) *Transcript {
	return &Transcript{
		g:     g,
		state: sha256.Sum256([]byte(protocolLabel)),
	}
}

// AppendMessage absorbs a labelled byte string into the transcript.
func (t *Transcript) AppendMessage(label string, data []byte) {
	h := sha256.New()
	h.Write(t.state[:])
	h.Write([]byte(label))
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
	h.Write(lenBuf[:])
	h.Write(data)
	copy(t.state[:], h.Sum(nil))
}

// AppendPoint absorbs a single group element in its canonical encoding.
func (t *Transcript) AppendPoint(label string, p group.Point) {
	t.AppendMessage(label, p.Bytes())
}

// AppendPoints absorbs a slice of group elements, each under an
// index-qualified sub-label so that absorbing [A, B] is distinguishable
// from absorbing [B, A].
func (t *Transcript) AppendPoints(label string, points []group.Point) {
	t.AppendMessage(label+".len", lengthBytes(len(points)))
	for i, p := range points {
		t.AppendPoint(fmt.Sprintf("%s[%d]", label, i), p)
	}
}

// AppendScalar absorbs a single scalar in its canonical encoding.
func (t *Transcript) AppendScalar(label string, s group.Scalar) {
	t.AppendMessage(label, s.Bytes())
}

// AppendScalars absorbs a slice of scalars under index-qualified labels.
func (t *Transcript) AppendScalars(label string, scalars []group.Scalar) {
	t.AppendMessage(label+".len", lengthBytes(len(scalars)))
	for i, s := range scalars {
		t.AppendScalar(fmt.Sprintf("%s[%d]", label, i), s)
	}
}

// ChallengeScalar derives a labelled Fiat-Shamir challenge and ratchets
// the transcript state forward so that no two challenges drawn from the
// same transcript are ever equal by construction (each depends on the
// label and on everything absorbed or challenged before it).
func (t *Transcript) ChallengeScalar(label string) group.Scalar {
	h := sha256.New()
	h.Write(t.state[:])
	h.Write([]byte(label))
	h.Write([]byte("challenge"))
	wide := h.Sum(nil)

	challenge := t.g.HashToScalar(wide)

	ratchet := sha256.Sum256(wide)
	t.state = ratchet
	return challenge
}

// ChallengeScalars derives n independent labelled challenges in one
// call. The argument packages in this module draw each of their
// challenges with ChallengeScalar instead.
func (t *Transcript) ChallengeScalars(label string, n int) []group.Scalar {
	out := make([]group.Scalar, n)
	for i := range out {
		out[i] = t.ChallengeScalar(fmt.Sprintf("%s[%d]", label, i))
	}
	return out
}

func lengthBytes(n int) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	return buf[:]
}
