// Package launcher holds module-wide metadata for glitched.launcher.
package launcher

// Version is the launcher release version.
const Version = "0.4.1"
