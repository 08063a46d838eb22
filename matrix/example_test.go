package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/correlategm/matrix"
)

// ExampleCrossCorrelation correlates two tract rows against two component rows.
func ExampleCrossCorrelation() {
	tracts, _ := matrix.FromRows([][]float64{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
	})
	components, _ := matrix.FromRows([][]float64{
		{2, 4, 6, 8},
		{1, 1, 1, 1},
	})

	corr, _ := matrix.CrossCorrelation(tracts, components)
	for i := 0; i < corr.Rows(); i++ {
		for j := 0; j < corr.Cols(); j++ {
			v, _ := corr.At(i, j)
			if j > 0 {
				fmt.Print(" ")
			}
			fmt.Printf("%.2f", v)
		}
		fmt.Println()
	}

	// Output:
	// 1.00 NaN
	// -1.00 NaN
}
