package version

// Version is the current version of the tradekit library.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/quantlab-oss/tradekit/internal/version.Version=1.2.3"
// A value of "main" indicates a development build and skips
// compatibility checks.
var Version = "v0.3.0"

// GetVersion returns the current version of the library.
func GetVersion() string {
	return Version
}
