package fpu

// Fixed instruction costs in clock cycles. Costs do not depend on operand
// values or addressing modes.
const (
	cycFMOVE    = 4
	cycFINT     = 4
	cycFSQRT    = 109
	cycFABS     = 3
	cycFNEG     = 3
	cycFDIV     = 43
	cycFADD     = 9
	cycFMUL     = 11
	cycFSUB     = 9
	cycFCMP     = 7
	cycFTST     = 7
	cycFMOVECR  = 4
	cycFMOVEOut = 12 // FMOVE FPn,<ea>
	cycFMOVECtl = 10 // FMOVE to or from FPCR/FPSR/FPIAR
	cycFMOVEM   = 2  // per register transferred
	cycFBcc     = 7
	cycFScc     = 7
	cycFDBcc    = 7
	cycFSAVE    = 4
	cycFRESTORE = 4
)
