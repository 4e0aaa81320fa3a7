package genconfig

// Message constants
const (
	MsgShort = "Write a starter configuration file"
	MsgLong  = `The 'genconfig' command writes a starter config.toml with the registry
URL and namespace filled in with defaults. It refuses to overwrite an
existing file.`

	MsgExample = `  # Write to the default XDG location
  packship genconfig

  # Write somewhere specific
  packship genconfig --output ./config.toml`
)
