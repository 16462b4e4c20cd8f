package services

import "time"

// Observer receives call outcomes and height changes, typically to export them as metrics.
type Observer interface {
	ObserveCall(method, result, code string, d time.Duration)
	SetHeight(height uint64)
}

type nopObserver struct{}

func (nopObserver) ObserveCall(string, string, string, time.Duration) {}
func (nopObserver) SetHeight(uint64)                                  {}
