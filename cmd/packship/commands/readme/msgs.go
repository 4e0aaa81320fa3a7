package readme

// Message constants
const (
	MsgShort = "Preview the readme this package will publish"
	MsgLong  = `The 'readme' command locates the readme that would be uploaded alongside
the package (readme.md in any casing is preferred, a bare readme file is
accepted) and renders it to the terminal.`

	MsgExample = `  # Preview the readme of the package in the current directory
  packship readme`
)
