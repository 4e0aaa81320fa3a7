package version

// Message constants
const (
	MsgShort = "Bump the package version, commit and tag"
	MsgLong  = `The 'version' command bumps the version in the package description, writes
the description back preserving its key order, and — when the directory is
under version control — commits the change and applies a vX.Y.Z tag.

The argument is either a component to bump (major, minor, patch) or an
explicit semantic version.`

	MsgExample = `  # 1.2.3 -> 1.2.4
  packship version patch

  # 1.2.3 -> 2.0.0
  packship version major

  # Set an explicit version
  packship version 2.1.0-beta.1`
)
