// SPDX-License-Identifier: Unlicense OR MIT

// Package gl loads the handful of OpenGL and OpenGL ES entry points used
// to inspect and exercise a freshly activated context.
package gl

type Enum uint32

const (
	COLOR_BUFFER_BIT         = 0x4000
	DEPTH_BUFFER_BIT         = 0x100
	STENCIL_BUFFER_BIT       = 0x00000400
	EXTENSIONS               = 0x1f03
	MAX_TEXTURE_SIZE         = 0xd33
	NO_ERROR                 = 0x0
	NUM_EXTENSIONS           = 0x821D
	RENDERER                 = 0x1F01
	SHADING_LANGUAGE_VERSION = 0x8B8C
	VENDOR                   = 0x1F00
	VERSION                  = 0x1f02
	MAJOR_VERSION            = 0x821B
	MINOR_VERSION            = 0x821C
	RED_BITS                 = 0x0D52
	GREEN_BITS               = 0x0D53
	BLUE_BITS                = 0x0D54
	ALPHA_BITS               = 0x0D55
	DEPTH_BITS               = 0x0D56
	STENCIL_BITS             = 0x0D57
)
