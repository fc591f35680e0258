package version

// Set via -ldflags at build time.
var (
	AppName   = "Aurora"
	Version   = "dev"
	BuildDate = "unknown"
)
