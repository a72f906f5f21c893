package responsive

// DeviceClass is the coarse layout class of a viewport.
type DeviceClass string

const (
	Mobile  DeviceClass = "mobile"
	Tablet  DeviceClass = "tablet"
	Desktop DeviceClass = "desktop"
)

// Breakpoints in CSS pixels.
const (
	MobileMax = 768
	TabletMax = 1024
)

// Classify returns the device class for a viewport width.
func Classify(width float64) DeviceClass {
	switch {
	case width < MobileMax:
		return Mobile
	case width < TabletMax:
		return Tablet
	default:
		return Desktop
	}
}

// Narrow reports whether the class uses the narrow (mobile) layout.
func (d DeviceClass) Narrow() bool {
	return d == Mobile
}
