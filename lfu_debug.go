//go:build lfucache_debug

package lfucache

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
