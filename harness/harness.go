// Package harness batches stimulus through the fp8 ALU: scripted,
// randomized and exhaustive case sources, pass/fail accounting, failure
// diagnostics and trace capture. The engine is a pure function and owns
// no counters; they all live here, with the caller.
package harness

import (
	"fmt"
	"io"
	"iter"
	"log"
	"math/rand"

	"github.com/hwsim/fp8alu/alu"
	"github.com/hwsim/fp8alu/fp8"
)

// Case is a single stimulus for the unit under test. When Want is nil
// the outcome is checked against the reference model instead of an exact
// expectation.
type Case struct {
	Name string
	A, B fp8.Value
	Op   alu.Op
	Want *alu.Result
}

// Harness drives batches of cases through an ALU.
type Harness struct {
	Verbose bool
	Alu     *alu.Alu
	Output  io.Writer // Failing-case diagnostics; nil discards them.
	Trace   *Recorder // Optional evaluation trace; nil disables capture.

	Passed int
	Failed int
}

// NewHarness creates a harness around a fresh ALU in the given mode.
func NewHarness(mode fp8.Mode) *Harness {
	return &Harness{Alu: alu.NewAlu(mode)}
}

// Run evaluates a single case, checks it, and updates the counters.
func (h *Harness) Run(c Case) (ok bool) {
	got := h.Alu.Evaluate(c.A, c.B, c.Op)
	if h.Trace != nil {
		h.Trace.Record(c.A, c.B, c.Op, got)
	}

	if c.Want != nil {
		ok = got == *c.Want
	} else {
		ok = h.conforms(c, got)
	}

	if ok {
		h.Passed++
		return
	}

	h.Failed++
	if h.Output != nil {
		fmt.Fprintf(h.Output, "FAIL %v: %v %v %v -> %v %v",
			c.Name, c.Op, c.A, c.B, got.Value, got.Flags)
		if c.Want != nil {
			fmt.Fprintf(h.Output, " want %v %v", c.Want.Value, c.Want.Flags)
		}
		fmt.Fprintln(h.Output)
	}
	return
}

// RunAll runs every case in the sequence.
func (h *Harness) RunAll(cases iter.Seq[Case]) {
	for c := range cases {
		if h.Verbose {
			log.Printf("harness: %v", c.Name)
		}
		h.Run(c)
	}
}

// Reset clears the counters.
func (h *Harness) Reset() {
	h.Passed = 0
	h.Failed = 0
}

// Summary returns a one-line account of the counters.
func (h *Harness) Summary() string {
	return fmt.Sprintf("%d passed, %d failed of %d cases", h.Passed, h.Failed, h.Passed+h.Failed)
}

// Stress returns a deterministic pseudo-random case sequence: n cases of
// uniformly random operands and selectors. The same seed replays the
// same sequence.
func Stress(seed int64, n int) iter.Seq[Case] {
	return func(yield func(Case) bool) {
		rands := rand.New(rand.NewSource(seed))
		for i := range n {
			c := Case{
				Name: fmt.Sprintf("stress-%06d", i),
				A:    fp8.Value(rands.Uint32()),
				B:    fp8.Value(rands.Uint32()),
				Op:   alu.Op(rands.Uint32() & 0x7),
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Exhaustive returns every operand pair for one operation, all 65536 of
// them, in bit-pattern order.
func Exhaustive(op alu.Op) iter.Seq[Case] {
	return func(yield func(Case) bool) {
		for a := range fp8.Values() {
			for b := range fp8.Values() {
				c := Case{
					Name: fmt.Sprintf("%v-%02x-%02x", op, uint8(a), uint8(b)),
					A:    a,
					B:    b,
					Op:   op,
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}
