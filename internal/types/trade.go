package types

// Trade is an immutable record of a closed round trip. A Trade is
// created only when a position closes, either on a signal-driven exit
// or on forced end-of-data liquidation.
type Trade struct {
	EntryDate  string  `csv:"entry_date" yaml:"entry_date"`
	ExitDate   string  `csv:"exit_date" yaml:"exit_date"`
	EntryPrice float64 `csv:"entry_price" yaml:"entry_price"`
	ExitPrice  float64 `csv:"exit_price" yaml:"exit_price"`
	// Size is the position size truncated toward zero. Capital
	// accounting inside the engine always uses the unrounded size;
	// the integer value exists for reporting only.
	Size int     `csv:"size" yaml:"size"`
	PnL  float64 `csv:"pnl" yaml:"pnl"`
}

// IsWin reports whether the trade closed with a positive profit.
func (t Trade) IsWin() bool {
	return t.PnL > 0
}
