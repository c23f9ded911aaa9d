//go:build !simdebug

package ecs

const debugAsserts = false
