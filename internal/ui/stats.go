package ui

import "sync/atomic"

type Stats struct {
	Pages    atomic.Int64
	Chapters atomic.Int64
	Bytes    atomic.Int64
}
