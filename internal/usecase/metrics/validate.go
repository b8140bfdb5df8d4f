package metrics

import (
	"math"

	"github.com/johnquangdev/call-analyzer/internal/domain/entities"
)

// ValidateSegments fails on the first segment with a non-finite or negative start,
// or an end before its start.
func ValidateSegments(segments []entities.Segment) error {
	for i, seg := range segments {
		switch {
		case math.IsNaN(seg.Start) || math.IsInf(seg.Start, 0):
			return &entities.ValidationError{Index: i, Field: "start", Reason: "must be a finite number"}
		case math.IsNaN(seg.End) || math.IsInf(seg.End, 0):
			return &entities.ValidationError{Index: i, Field: "end", Reason: "must be a finite number"}
		case seg.Start < 0:
			return &entities.ValidationError{Index: i, Field: "start", Reason: "must not be negative"}
		case seg.End < seg.Start:
			return &entities.ValidationError{Index: i, Field: "end", Reason: "must not be before start"}
		}
	}
	return nil
}
