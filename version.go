package gotdict

// Version information for gotdict.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/gotdict.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "gotdict"

	// Description is a short description of the application.
	Description = "English dictionary lookups with Korean translations"

	// Version is the semantic version of the application.
	Version = "0.3.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/gotdict"
)

// Build information, set via ldflags.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns the version with a short commit suffix when known.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns the User-Agent sent to the dictionary and translation APIs.
func UserAgent() string {
	return Name + "/" + Version + " (+" + Repository + ")"
}
