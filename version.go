package scrolly

// Version is the module release, reported by the CLI and the servers.
const Version = "0.3.0"
