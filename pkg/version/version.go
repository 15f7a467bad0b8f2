package version

// Version is the application release.
const Version = "v0.1.0"
