package espalier

// Version is the current espalier release.
const Version = "0.2.0"
