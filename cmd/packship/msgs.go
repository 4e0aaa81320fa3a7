package main

// Message constants
const (
	MsgRootShort = "Publish versioned source packages to a registry"
	MsgRootLong  = `packship turns a package directory and its module.json description into a
filtered, reproducible tar.gz archive and uploads it to a package registry.

It understands semantic versions, keeps your description file's key order
intact, honors a layered ignore policy (built-in rules plus .yotta_ignore),
and stays out of the way of your version control.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
)
