// Package models defines client-side data models used by the wallet CLI.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotReceipt = errors.New("response is not a receipt")

// Event is one entry of a receipt's event log as sent by the server.
type Event struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount,omitempty"`
	Sender    string `json:"sender,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	MemoHex   string `json:"memo_hex,omitempty"`
}

// Receipt is the outcome of a wallet call. A failed contract call has
// Result "err" together with its numeric Code.
type Receipt struct {
	CallID     string
	Method     string
	Caller     string
	Height     uint64
	Result     string
	Code       uint32
	Error      string
	Value      any
	Events     []Event
	RecordedAt time.Time
}

func (r *Receipt) OK() bool { return r.Result == "ok" }

// ReceiptFromMap decodes a receipt from a decoded google.protobuf.Struct.
func ReceiptFromMap(m map[string]any) (*Receipt, error) {
	callID, _ := m["call_id"].(string)
	if callID == "" {
		return nil, ErrNotReceipt
	}

	r := &Receipt{
		CallID: callID,
		Value:  m["value"],
	}
	r.Method, _ = m["method"].(string)
	r.Caller, _ = m["caller"].(string)
	r.Result, _ = m["result"].(string)
	r.Error, _ = m["error"].(string)
	if h, ok := m["height"].(float64); ok {
		r.Height = uint64(h)
	}
	if c, ok := m["code"].(float64); ok {
		r.Code = uint32(c)
	}
	events, err := EventsFromList(m["events"])
	if err != nil {
		return nil, err
	}
	r.Events = events
	return r, nil
}

// EventsFromList decodes the "events" list of a response. A missing list
// yields no events.
func EventsFromList(v any) ([]Event, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("events: unexpected %T", v)
	}

	out := make([]Event, 0, len(list))
	for _, item := range list {
		em, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("event: unexpected %T", item)
		}
		var e Event
		e.ID, _ = em["id"].(string)
		e.Kind, _ = em["kind"].(string)
		e.Amount, _ = em["amount"].(string)
		e.Sender, _ = em["sender"].(string)
		e.Recipient, _ = em["recipient"].(string)
		e.MemoHex, _ = em["memo_hex"].(string)
		out = append(out, e)
	}
	return out, nil
}

func (e Event) String() string {
	switch e.Kind {
	case "memo":
		return "memo " + e.MemoHex
	case "":
		return "?"
	default:
		return fmt.Sprintf("%s %s %s -> %s", e.Kind, e.Amount, e.Sender, e.Recipient)
	}
}

// String renders the receipt the way the CLI prints it.
func (r *Receipt) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s %s", r.Height, r.Method, r.CallID)
	if r.OK() {
		b.WriteString(" ok")
		if r.Value != nil {
			fmt.Fprintf(&b, " value=%v", r.Value)
		}
	} else {
		fmt.Fprintf(&b, " err %d %s", r.Code, r.Error)
	}
	for _, e := range r.Events {
		b.WriteString("\n  ")
		b.WriteString(e.String())
	}
	return b.String()
}

// Session is the identity the CLI signs calls with.
type Session struct {
	Account     string
	AccessToken string
	Operator    bool
}
