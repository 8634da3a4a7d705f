// SPDX-License-Identifier: Unlicense OR MIT

/*
Package glctx creates and manages hardware accelerated rendering contexts
for OpenGL and OpenGL ES on top of the native context APIs: EGL (X11,
Wayland, KMS, Android, Raspberry Pi and ANGLE on Windows), GLX on X11 and
WGL on Windows.

The caller supplies the native display and window; glctx chooses a
config, creates the drawing surface and the context and binds them to the
calling thread:

	ctx, err := glctx.Init(display, window, glctx.ProfileES, 2, 0)
	if err != nil {
		return err
	}
	defer ctx.Terminate()
	cfg, err := ctx.ChooseConfig([]glctx.Attr{
		{Key: glctx.AttrRedSize, Value: 8},
		{Key: glctx.AttrGreenSize, Value: 8},
		{Key: glctx.AttrBlueSize, Value: 8},
	})
	if err != nil {
		return err
	}
	if err := ctx.Activate(cfg, window, nil); err != nil {
		return err
	}
	for running {
		// Render with the GL entry points from ctx.ProcAddress.
		ctx.Flip()
	}

# Backends

The default backend depends on the target: EGL on Linux, FreeBSD and
Android, WGL on Windows. The glx build tag selects GLX instead of EGL and
the angle build tag selects ANGLE's EGL on Windows. WithBackend overrides
the default at run time.

# Threads

A Context is not safe for concurrent use. Native contexts are bound to
the thread that made them current, so callers should call
runtime.LockOSThread before Activate or Bind, and must Unbind a context
before binding it on another thread.

# Errors

Failures are reported as Error values. Native error codes are only
reported through the logger installed with SetLogger or SetLogFunction.
*/
package glctx
