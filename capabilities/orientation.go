package capabilities

import (
	"bytes"
)

// Attribute prefixes some drone firmwares write into embedded XMP for gimbal attitude.
var orientation_markers = [][]byte{
	[]byte(`RollDegree="`),
	[]byte(`PitchDegree="`),
	[]byte(`YawDegree="`),
}

// HasOrientation reports whether b contains roll, pitch and yaw attribute markers. This
// is a plain substring search over the whole buffer and is not confined to an XMP packet.
func HasOrientation(b []byte) bool {

	for _, m := range orientation_markers {
		if !bytes.Contains(b, m) {
			return false
		}
	}

	return true
}
