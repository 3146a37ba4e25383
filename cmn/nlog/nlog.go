// Package nlog is the relay core's logger: severity-leveled, timestamped,
// buffered writes with an explicit Flush boundary for shutdown paths.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package nlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

type severity int

const (
	sevInfo severity = iota
	sevWarn
	sevErr
)

const sevChar = "IWE"

var (
	mw     sync.Mutex
	out    = bufio.NewWriterSize(os.Stderr, 4*1024)
	minSev = sevInfo
	title  string
)

// SetOutput redirects the logger; primarily used by tests to capture output.
func SetOutput(w *bufio.Writer) {
	mw.Lock()
	out = w
	mw.Unlock()
}

// SetTitle attaches a banner emitted once, e.g. the node's CommID, ahead of
// the next line logged.
func SetTitle(s string) { title = s }

func Infof(format string, args ...any)    { log(sevInfo, 1, format, args...) }
func Infoln(args ...any)                  { log(sevInfo, 1, "", args...) }
func Warningf(format string, args ...any) { log(sevWarn, 1, format, args...) }
func Warningln(args ...any)               { log(sevWarn, 1, "", args...) }
func Errorf(format string, args ...any)    { log(sevErr, 1, format, args...) }
func Errorln(args ...any)                 { log(sevErr, 1, "", args...) }

// Flush forces buffered log lines to the underlying writer. Call before
// process exit; warning and error lines are flushed as they are logged,
// info lines only by Flush or a later warning/error.
func Flush() {
	mw.Lock()
	out.Flush()
	mw.Unlock()
}

func log(sev severity, depth int, format string, args ...any) {
	if sev < minSev {
		return
	}
	line := format1(sev, depth+1, format, args...)
	mw.Lock()
	if title != "" {
		out.WriteString(title)
		title = ""
	}
	out.WriteString(line)
	if sev >= sevWarn {
		out.Flush()
	}
	mw.Unlock()
}

func format1(sev severity, depth int, format string, args ...any) string {
	var b strings.Builder
	b.WriteByte(sevChar[sev])
	b.WriteByte(' ')
	b.WriteString(time.Now().Format("15:04:05.000000"))
	b.WriteByte(' ')
	if _, fn, ln, ok := runtime.Caller(depth + 1); ok {
		fn = filepath.Base(fn)
		b.WriteString(fn)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(ln))
		b.WriteByte(' ')
	}
	if format == "" {
		fmt.Fprintln(&b, args...)
	} else {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	return b.String()
}
