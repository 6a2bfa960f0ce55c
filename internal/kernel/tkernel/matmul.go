package tkernel

import "github.com/itohio/cputensor/tensor"

// MatMul implements §4.5: R = X·Y for X:(M,K), Y:(K,N), R:(M,N), each
// stored row-major contiguous (the listed second axis is the fast axis —
// X's K, Y's and R's N). This is the one kernel in the backend that reads
// Shape directly rather than walking Strides: the broadcast/reduction
// kernels treat axis0 as the innermost (stride-1) axis throughout (§3,
// §4.4), but §4.5 describes matmul operands in conventional row/column
// order with the column axis contiguous — the two conventions don't
// square, so matmul is implemented against the literal (M,K)/(K,N)/(M,N)
// row-major layout the design text gives, independent of the general
// shape/stride machinery.
//
// Rows of R are partitioned across workers; ordering is the straightforward
// i-k-j triple loop, no blocking.
func MatMul(workerIdx, workerCount int, node *tensor.Tensor) {
	x, y := node.Inputs[0], node.Inputs[1]
	m, k := x.Shape[0], x.Shape[1]
	n := y.Shape[1]

	rowsPerWorker := (m + workerCount - 1) / workerCount
	rowStart := workerIdx * rowsPerWorker
	rowEnd := rowStart + rowsPerWorker
	if rowEnd > m {
		rowEnd = m
	}
	if rowEnd <= rowStart {
		return
	}

	xd, yd, rd := x.Data(), y.Data(), node.Data()

	for i := rowStart; i < rowEnd; i++ {
		rRow := rd[i*n : i*n+n]
		for j := range rRow {
			rRow[j] = 0
		}
		xRow := xd[i*k : i*k+k]
		for kk := 0; kk < k; kk++ {
			xik := xRow[kk]
			yRow := yd[kk*n : kk*n+n]
			for j := 0; j < n; j++ {
				rRow[j] += xik * yRow[j]
			}
		}
	}
}
