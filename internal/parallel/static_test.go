package parallel

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/parbench/internal/errors"
)

func TestStaticPartitions_Layout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		span    Range
		threads int
		want    []Range
	}{
		{
			name:    "remainder goes to last partition",
			span:    Range{0, 10},
			threads: 3,
			want:    []Range{{0, 3}, {3, 6}, {6, 10}},
		},
		{
			name:    "even split",
			span:    Range{0, 8},
			threads: 4,
			want:    []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}},
		},
		{
			name:    "offset span",
			span:    Range{1, 11},
			threads: 3,
			want:    []Range{{1, 4}, {4, 7}, {7, 11}},
		},
		{
			name:    "more threads than elements",
			span:    Range{0, 3},
			threads: 5,
			want:    []Range{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 3}},
		},
		{
			name:    "empty span",
			span:    Range{0, 0},
			threads: 2,
			want:    []Range{{0, 0}, {0, 0}},
		},
		{
			name:    "single thread",
			span:    Range{0, 7},
			threads: 1,
			want:    []Range{{0, 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parts, err := StaticPartitions(tt.span, tt.threads)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(parts) != len(tt.want) {
				t.Fatalf("expected %d partitions, got %d", len(tt.want), len(parts))
			}
			for i, p := range parts {
				if p.ID != i {
					t.Errorf("partition %d has id %d", i, p.ID)
				}
				if p.Range != tt.want[i] {
					t.Errorf("partition %d = %s, want %s", i, p.Range, tt.want[i])
				}
			}
		})
	}
}

func TestStaticPartitions_InvalidConfiguration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		span    Range
		threads int
	}{
		{"zero threads", Range{0, 10}, 0},
		{"negative threads", Range{0, 10}, -1},
		{"negative length", Range{5, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := StaticPartitions(tt.span, tt.threads)
			if !apperrors.IsConfigError(err) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestNewRange(t *testing.T) {
	t.Parallel()
	if _, err := NewRange(3, 2); !apperrors.IsConfigError(err) {
		t.Errorf("expected ConfigError for [3, 2), got %v", err)
	}
	r, err := NewRange(2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Empty() || r.Len() != 0 {
		t.Errorf("expected empty range, got %s", r)
	}
	if r := (Range{2, 5}); !r.Contains(4) || r.Contains(5) {
		t.Errorf("Contains does not honour half-open bounds for %s", r)
	}
}

// TestStaticPartitions_PropertyBased checks, for arbitrary lengths and thread
// counts, that partitions are ordered, disjoint, cover [0, L) exactly, and
// that only the last partition deviates from the truncated block size.
func TestStaticPartitions_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("static partitions tile [0, L)", prop.ForAll(
		func(length, threads int) bool {
			parts, err := StaticPartitions(Range{0, length}, threads)
			if err != nil || len(parts) != threads {
				return false
			}
			next := 0
			for i, p := range parts {
				if p.Start != next || p.End < p.Start {
					return false
				}
				if i < threads-1 && p.Len() != length/threads {
					return false
				}
				next = p.End
			}
			return next == length
		},
		gen.IntRange(0, 100_000),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}
