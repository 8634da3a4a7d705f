// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"strings"
)

// Info identifies the implementation behind a context.
type Info struct {
	Vendor     string
	Renderer   string
	Version    string
	Shading    string
	Extensions []string
}

// Version is a parsed GL_VERSION string.
type Version struct {
	Major, Minor int
	ES           bool
}

func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("OpenGL ES %d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("OpenGL %d.%d", v.Major, v.Minor)
}

// ParseGLVersion parses the GL_VERSION string of desktop OpenGL and
// OpenGL ES implementations.
func ParseGLVersion(glVer string) (Version, error) {
	var ver Version
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver.Major, &ver.Minor); err == nil {
		ver.ES = true
		return ver, nil
	} else if _, err := fmt.Sscanf(glVer, "OpenGL ES-CM %d.%d", &ver.Major, &ver.Minor); err == nil {
		// OpenGL ES 1.x common profile.
		ver.ES = true
		return ver, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver.Major, &ver.Minor); err == nil {
		return ver, nil
	}
	return ver, fmt.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// Extensions splits a GL_EXTENSIONS string.
func Extensions(exts string) []string {
	return strings.Fields(exts)
}
