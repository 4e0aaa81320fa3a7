package publish

// Message constants
const (
	MsgShort = "Build and upload this package to the registry"
	MsgLong  = `The 'publish' command builds the distributable archive of the package in
the current directory and uploads it, together with the description file and
readme, to the configured registry.

The archive excludes build output, VCS metadata and anything matched by the
package's .yotta_ignore file. Publishing refuses to run from a dirty working
tree unless --force is given. No VCS tag is created; use 'packship version'
to bump, commit and tag.`

	MsgExample = `  # Publish the component in the current directory
  packship publish

  # Publish even with uncommitted changes
  packship publish --force

  # Publish a target description
  packship publish --target`
)
