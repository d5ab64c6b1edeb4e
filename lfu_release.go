//go:build !lfucache_debug

package lfucache

const debugging = false

func assert(bool, string) {}
