// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package moment

import "github.com/cpmech/gosl/la"

// NNLS solves min_{w>=0} ||A w - b||_2 by the Lawson-Hanson active-set
// method. A is N x M (rows = basis terms, cols = candidate points); b has
// length N. Returns the non-negative weight vector w of length M. There is
// no corpus library for constrained least squares, so this is a
// from-scratch numerical kernel in the style of gofem's dense-matrix
// element routines (gosl/la for allocation and mat-vec only).
func NNLS(A [][]float64, b []float64, maxIter int) []float64 {
	n := len(b) // rows
	m := 0
	if n > 0 {
		m = len(A[0])
	}
	w := make([]float64, m)
	passive := make([]bool, m) // P set membership
	if m == 0 || n == 0 {
		return w
	}

	grad := make([]float64, m) // A^T (b - A w)
	updateGradient(grad, A, b, w, n, m)

	for iter := 0; iter < maxIter; iter++ {
		// find the zero-set index with largest gradient component
		best := -1
		bestVal := 0.0
		for j := 0; j < m; j++ {
			if passive[j] {
				continue
			}
			if best < 0 || grad[j] > bestVal {
				best = j
				bestVal = grad[j]
			}
		}
		if best < 0 || bestVal <= 1e-12 {
			break // optimality: no zero-set variable wants to increase
		}
		passive[best] = true

		for {
			z := solvePassiveLS(A, b, passive, n, m)
			neg := false
			for j := 0; j < m; j++ {
				if passive[j] && z[j] <= 0 {
					neg = true
					break
				}
			}
			if !neg {
				copy(w, z)
				break
			}
			alpha := 1.0
			for j := 0; j < m; j++ {
				if passive[j] && z[j] <= 0 {
					denom := w[j] - z[j]
					if denom > 1e-300 {
						a := w[j] / denom
						if a < alpha {
							alpha = a
						}
					}
				}
			}
			for j := 0; j < m; j++ {
				w[j] += alpha * (z[j] - w[j])
				if passive[j] && w[j] <= 1e-14 {
					passive[j] = false
					w[j] = 0
				}
			}
		}
		updateGradient(grad, A, b, w, n, m)
	}
	return w
}

// updateGradient sets grad = A^T (b - A w)
func updateGradient(grad []float64, A [][]float64, b, w []float64, n, m int) {
	Aw := make([]float64, n)
	la.MatVecMul(Aw, 1, A, w)
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		res[i] = b[i] - Aw[i]
	}
	for j := 0; j < m; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += A[i][j] * res[i]
		}
		grad[j] = sum
	}
}

// solvePassiveLS solves the unconstrained least-squares problem restricted
// to the passive-set columns via the normal equations (A_P^T A_P) z = A_P^T
// b, solved by Gaussian elimination with partial pivoting. Columns outside
// the passive set are returned as zero.
func solvePassiveLS(A [][]float64, b []float64, passive []bool, n, m int) []float64 {
	idx := make([]int, 0, m)
	for j := 0; j < m; j++ {
		if passive[j] {
			idx = append(idx, j)
		}
	}
	k := len(idx)
	z := make([]float64, m)
	if k == 0 {
		return z
	}

	normal := la.MatAlloc(k, k)
	rhs := make([]float64, k)
	for p, jp := range idx {
		for q, jq := range idx {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += A[i][jp] * A[i][jq]
			}
			normal[p][q] = sum
		}
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += A[i][jp] * b[i]
		}
		rhs[p] = sum
	}

	sol := gaussSolve(normal, rhs, k)
	for p, jp := range idx {
		z[jp] = sol[p]
	}
	return z
}

// gaussSolve solves the k x k system mat*x = rhs by Gaussian elimination
// with partial pivoting; mat and rhs are consumed (mutated) by the caller's
// copies since callers pass freshly allocated matrices.
func gaussSolve(mat [][]float64, rhs []float64, k int) []float64 {
	for col := 0; col < k; col++ {
		piv := col
		best := abs(mat[col][col])
		for row := col + 1; row < k; row++ {
			if v := abs(mat[row][col]); v > best {
				best = v
				piv = row
			}
		}
		if piv != col {
			mat[col], mat[piv] = mat[piv], mat[col]
			rhs[col], rhs[piv] = rhs[piv], rhs[col]
		}
		if abs(mat[col][col]) < 1e-300 {
			continue // singular direction: leave downstream value at 0
		}
		for row := col + 1; row < k; row++ {
			f := mat[row][col] / mat[col][col]
			if f == 0 {
				continue
			}
			for c := col; c < k; c++ {
				mat[row][c] -= f * mat[col][c]
			}
			rhs[row] -= f * rhs[col]
		}
	}
	x := make([]float64, k)
	for row := k - 1; row >= 0; row-- {
		sum := rhs[row]
		for c := row + 1; c < k; c++ {
			sum -= mat[row][c] * x[c]
		}
		if abs(mat[row][row]) < 1e-300 {
			x[row] = 0
			continue
		}
		x[row] = sum / mat[row][row]
	}
	return x
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
