//go:build !(linux && cgo)

package version

const x11Enabled = false
