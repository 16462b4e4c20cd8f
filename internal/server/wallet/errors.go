package wallet

import (
	"errors"
	"fmt"
)

// Code is the stable numeric identifier of a rejected call. Values are part of
// the public contract and must never change.
type Code uint32

const (
	CodeNotMember          Code = 1001
	CodeNotAuthorized      Code = 1002
	CodeAccountLocked      Code = 1003
	CodeLockingUnavailable Code = 1004
	CodeAlreadyLocked      Code = 1005
	CodeAlreadyAMember     Code = 1006
	CodeInsufficientFunds  Code = 2001
	CodeInvalidAmount      Code = 2002
	CodeDissentExpired     Code = 3001
	CodeDissentActive      Code = 3002
)

// Error is a typed rejection. A call that returns an *Error has had no effect.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

var (
	ErrNotMember          = &Error{Code: CodeNotMember, Message: "not member"}
	ErrNotAuthorized      = &Error{Code: CodeNotAuthorized, Message: "not authorized"}
	ErrAccountLocked      = &Error{Code: CodeAccountLocked, Message: "account locked"}
	ErrLockingUnavailable = &Error{Code: CodeLockingUnavailable, Message: "locking unavailable"}
	ErrAlreadyLocked      = &Error{Code: CodeAlreadyLocked, Message: "already locked"}
	ErrAlreadyAMember     = &Error{Code: CodeAlreadyAMember, Message: "already a member"}
	ErrInsufficientFunds  = &Error{Code: CodeInsufficientFunds, Message: "insufficient funds"}
	ErrInvalidAmount      = &Error{Code: CodeInvalidAmount, Message: "invalid amount"}
	ErrDissentExpired     = &Error{Code: CodeDissentExpired, Message: "dissent expired"}
	ErrDissentActive      = &Error{Code: CodeDissentActive, Message: "dissent active"}
)

// CodeOf extracts the rejection code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
