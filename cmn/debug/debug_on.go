//go:build debug

// Package debug provides assertions that panic when the debug build tag is set.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package debug

import "fmt"

func ON() bool { return true }

func Assert(cond bool, args ...any) {
	if !cond {
		panic(fmt.Sprintln(append([]any{"assertion failed"}, args...)...))
	}
}

func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

func AssertNoErr(err error) {
	if err != nil {
		panic(err)
	}
}
