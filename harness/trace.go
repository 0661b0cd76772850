package harness

import (
	"fmt"
	"io"

	"github.com/hwsim/fp8alu/alu"
	"github.com/hwsim/fp8alu/fp8"
)

// Recorder captures evaluations as a waveform-style trace: one
// tab-separated record per evaluation, holding the tick count, selector,
// raw operand and result patterns, and the flag mask.
type Recorder struct {
	Output io.Writer // Trace destination; nil counts ticks only.

	ticks int
}

// Record appends one evaluation to the trace.
func (rec *Recorder) Record(a, b fp8.Value, op alu.Op, res alu.Result) (err error) {
	rec.ticks++
	if rec.Output == nil {
		return
	}
	_, err = fmt.Fprintf(rec.Output, "%06d\t%v\t%02x\t%02x\t%02x\t%v\n",
		rec.ticks, op, uint8(a), uint8(b), uint8(res.Value), res.Flags)
	return
}

// Ticks returns the number of evaluations recorded.
func (rec *Recorder) Ticks() int {
	return rec.ticks
}
