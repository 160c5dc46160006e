//go:build !debugTagify
// +build !debugTagify

package tagify

var debugging = false

func debugf(fmt string, args ...interface{}) {}
