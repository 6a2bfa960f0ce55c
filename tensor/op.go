package tensor

// Op is an operator tag naming the computation a node performs.
type Op int

const (
	NOP Op = iota
	CLONE
	VIEW
	TRANSPOSE
	PERMUTE

	MEAN
	MIN
	MAX
	SUM

	ABS
	NEG
	LOG
	SQR
	SQRT
	SIN
	COS
	STEP

	SOFTMAX
	SOFTMAX_DV
	SIGMOID
	SIGMOID_DV
	HARD_SIGMOID
	SILU
	SILU_DV
	TANH
	TANH_DV
	RELU
	RELU_DV
	GELU
	GELU_DV

	ADD
	SUB
	MUL
	DIV
	ADDS
	SUBS
	MULS
	DIVS

	MATMUL
)

// String renders the operator tag for diagnostics.
func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "UNKNOWN_OP"
}

var opNames = map[Op]string{
	NOP: "NOP", CLONE: "CLONE", VIEW: "VIEW", TRANSPOSE: "TRANSPOSE", PERMUTE: "PERMUTE",
	MEAN: "MEAN", MIN: "MIN", MAX: "MAX", SUM: "SUM",
	ABS: "ABS", NEG: "NEG", LOG: "LOG", SQR: "SQR", SQRT: "SQRT", SIN: "SIN", COS: "COS", STEP: "STEP",
	SOFTMAX: "SOFTMAX", SOFTMAX_DV: "SOFTMAX_DV", SIGMOID: "SIGMOID", SIGMOID_DV: "SIGMOID_DV",
	HARD_SIGMOID: "HARD_SIGMOID", SILU: "SILU", SILU_DV: "SILU_DV", TANH: "TANH", TANH_DV: "TANH_DV",
	RELU: "RELU", RELU_DV: "RELU_DV", GELU: "GELU", GELU_DV: "GELU_DV",
	ADD: "ADD", SUB: "SUB", MUL: "MUL", DIV: "DIV", ADDS: "ADDS", SUBS: "SUBS", MULS: "MULS", DIVS: "DIVS",
	MATMUL: "MATMUL",
}
