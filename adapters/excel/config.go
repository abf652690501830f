package excel

// SheetNames names the sheets of an input workbook
type SheetNames struct {
	Measurements string
	Effects      string
	ErrorLimit   string
}

// DefaultSheetNames returns the sheet layout produced by the screening pipeline
func DefaultSheetNames() SheetNames {
	return SheetNames{
		Measurements: "L",
		Effects:      "G",
		ErrorLimit:   "ErrorLimitLambda",
	}
}
