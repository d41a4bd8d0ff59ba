package raster

import "github.com/rok4/pyramid-core/internal/rerr"

// errUnsupportedSample builds the error returned by a GetLine* flavor an operator
// cannot natively serve (spec.md §9: an operator "should not declare
// itself as u8-capable without conversion").
func errUnsupportedSample(op, flavor string) error {
	return rerr.Wrap(rerr.Consistency, "raster: %s does not support %s lines", op, flavor)
}

func errLineOutOfRange(op string, y, height int) error {
	return rerr.Wrap(rerr.Consistency, "raster: %s: line %d out of range [0,%d)", op, y, height)
}

func errIncompatible(op string) error {
	return rerr.Wrap(rerr.Consistency, "raster: %s: incompatible source images", op)
}
