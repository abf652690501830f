package excel

// RawSheet is one worksheet as trimmed strings
type RawSheet struct {
	Header []string   // first row
	Rows   [][]string // data rows, padded to the header width
}
