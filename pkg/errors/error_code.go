package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidLength        ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInvalidType          ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound  ErrorCode = 200
	ErrCodeDataMalformed ErrorCode = 201
	ErrCodeQueryFailed   ErrorCode = 202
	ErrCodeFileOpen      ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError ErrorCode = 400

	// Model errors (500-599)
	ErrCodeModelNotTrained    ErrorCode = 500
	ErrCodeModelTrainFailed   ErrorCode = 501
	ErrCodeModelSingularInput ErrorCode = 502

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError ErrorCode = 600
	ErrCodeBacktestNoData      ErrorCode = 601

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeInvalidProvider       ErrorCode = 702
	ErrCodeVersionMismatch       ErrorCode = 703
)
