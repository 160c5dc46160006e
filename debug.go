//go:build debugTagify
// +build debugTagify

package tagify

import (
	"log"
)

var debugging = true

func debugf(fmt string, args ...interface{}) {
	log.Printf(fmt, args...)
}
