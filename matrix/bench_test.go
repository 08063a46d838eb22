// Package matrix_test provides benchmarks for the correlation kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/correlategm/matrix"
)

// benchShapes are (rows of A, rows of B, shared columns); the last one
// mirrors a 50-component × 40-tract grayordinate comparison.
var benchShapes = [][3]int{{16, 16, 1024}, {50, 40, 8192}, {50, 40, 91282}}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkF float64
)

func BenchmarkCrossCorrelation(b *testing.B) {
	b.ReportAllocs()
	for _, s := range benchShapes {
		b.Run(fmt.Sprintf("%dx%dx%d", s[0], s[1], s[2]), func(b *testing.B) {
			A := RandFilledDense(b, s[0], s[2], 1337)
			B := RandFilledDense(b, s[1], s[2], 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.CrossCorrelation(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkPearson(b *testing.B) {
	b.ReportAllocs()
	A := RandFilledDense(b, 2, 91282, 7)
	x, _ := A.Row(0)
	y, _ := A.Row(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r, err := matrix.Pearson(x, y)
		if err != nil {
			b.Fatal(err)
		}
		sinkF = r
	}
}
