//go:build linux && cgo

package xroot

// #cgo LDFLAGS: -lX11
// #include <X11/Xlib.h>
// #include <stdlib.h>
import "C"

import (
	"unsafe"
)

type xconn struct {
	dpy  *C.Display
	root C.Window
}

func openConnection(name string) (connection, bool) {
	var cname *C.char
	if name != "" {
		cname = C.CString(name)
		defer C.free(unsafe.Pointer(cname))
	}

	dpy := C.XOpenDisplay(cname)
	if dpy == nil {
		return nil, false
	}
	return &xconn{dpy: dpy, root: C.XDefaultRootWindow(dpy)}, true
}

func (x *xconn) storeName(line string) {
	cs := C.CString(line)
	defer C.free(unsafe.Pointer(cs))

	C.XStoreName(x.dpy, x.root, cs)
	C.XFlush(x.dpy)
}

func (x *xconn) close() {
	C.XCloseDisplay(x.dpy)
}
