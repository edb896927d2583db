package stream

import (
	"context"
	"slices"
	"testing"
)

func divideByTwo(n int) int {
	return n / 2
}

func isNonZero(n int) bool {
	return n != 0
}

func TestStream1(t *testing.T) {
	data := []int{0, 2, 4, 6, 8}
	ctx := context.Background()
	myStream := Slice(ctx, data)
	result := Collect(ctx,
		Transform(ctx, divideByTwo,
			Filter(ctx, isNonZero,
				myStream)))

	if !slices.Equal([]int{1, 2, 3, 4}, result) {
		t.Errorf("Expected [1, 2, 3, 4], got %v", result)
	}
}

func TestStream2(t *testing.T) {
	data := []int{0, 2, 4, 6, 8}
	ctx := context.Background()
	s := Slice(ctx, data)
	tf := Transform(ctx, divideByTwo, s)
	f := Filter(ctx, isNonZero, tf)
	result := Collect(ctx, f)

	if !slices.Equal([]int{1, 2, 3, 4}, result) {
		t.Errorf("Expected [1, 2, 3, 4], got %v", result)
	}
}

func TestTransformN(t *testing.T) {
	data := make([]int, 100)
	for i := range data {
		data[i] = i
	}
	ctx := context.Background()
	result := Collect(ctx, TransformN(ctx, 8, divideByTwo, Slice(ctx, data)))

	if len(result) != len(data) {
		t.Fatalf("Expected %d results, got %d", len(data), len(result))
	}
	slices.Sort(result)
	for i := 0; i < len(result); i += 2 {
		if result[i] != i/2 || result[i+1] != i/2 {
			t.Fatalf("Unexpected pair at %d: %d, %d", i, result[i], result[i+1])
		}
	}
}
