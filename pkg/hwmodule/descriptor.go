// SPDX-License-Identifier: MPL-2.0

package hwmodule

import "fmt"

const (
	// InfoSymbol is the exported symbol name every module library must define.
	// It names the module's descriptor structure.
	InfoSymbol = "HMI"

	// HardwareModuleTag is the tag value module descriptors are expected to carry
	// ("HWMT" packed big-endian into a uint32).
	HardwareModuleTag uint32 = 'H'<<24 | 'W'<<16 | 'M'<<8 | 'T'
)

// Descriptor is a read-only copy of the self-reported metadata of a loaded
// module. Only ID is part of the loading contract; the remaining fields are
// carried for callers that want to display or inspect them.
type Descriptor struct {
	// Tag should equal HardwareModuleTag. It is not validated by the Loader.
	Tag uint32 `json:"tag" toml:"tag"`
	// ModuleAPIVersion is the version of the module implementation.
	ModuleAPIVersion APIVersion `json:"module_api_version" toml:"module_api_version"`
	// HALAPIVersion is the version of the module interface the library was built against.
	HALAPIVersion APIVersion `json:"hal_api_version" toml:"hal_api_version"`
	// ID is the identifier the module reports for itself.
	ID string `json:"id" toml:"id"`
	// Name is a human-readable module name.
	Name string `json:"name" toml:"name"`
	// Author names the module's author or vendor.
	Author string `json:"author" toml:"author"`
}

// APIVersion is a packed major.minor version (major in the high byte).
type APIVersion uint16

// MakeAPIVersion packs a major and minor version number.
func MakeAPIVersion(major, minor uint8) APIVersion {
	return APIVersion(uint16(major)<<8 | uint16(minor))
}

// Major returns the major component.
func (v APIVersion) Major() uint8 { return uint8(v >> 8) }

// Minor returns the minor component.
func (v APIVersion) Minor() uint8 { return uint8(v) }

// String returns the version formatted as "major.minor".
func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// MarshalText encodes the version as "major.minor".
func (v APIVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// HasHardwareTag reports whether the descriptor carries HardwareModuleTag.
func (d *Descriptor) HasHardwareTag() bool {
	return d != nil && d.Tag == HardwareModuleTag
}

// TagString returns the tag as its four ASCII characters, or the hex value when
// the tag is not printable.
func (d *Descriptor) TagString() string {
	if d == nil {
		return ""
	}
	b := []byte{byte(d.Tag >> 24), byte(d.Tag >> 16), byte(d.Tag >> 8), byte(d.Tag)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", d.Tag)
		}
	}
	return string(b)
}
