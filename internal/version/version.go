// ABOUTME: Version and product identification constants
// ABOUTME: Reported in the control handshake and startup log
package version

const (
	// Version is the current release version.
	Version = "0.1.0"

	// Product is the product name reported to controllers.
	Product = "Notesprite"

	// Manufacturer identifies the project.
	Manufacturer = "Notesprite Project"
)
