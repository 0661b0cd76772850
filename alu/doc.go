// Package alu implements the arithmetic/logic unit for the fp8 minifloat
// format.
//
// The unit is a pure function of two encoded operands and a 3-bit
// operation selector: add, subtract, multiply and divide on the decoded
// fields, plus AND, OR, XOR and NOT on the raw bit patterns. Every
// evaluation returns an encoded result and four status flags (overflow,
// underflow, zero, invalid); no state survives between calls and no input
// combination panics.
//
// Add and subtract round to nearest using guard, round and sticky bits
// collected during alignment. Multiply and divide truncate; the two paths
// intentionally lose precision differently.
package alu
