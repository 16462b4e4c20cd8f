package grpc

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	"google.golang.org/protobuf/types/known/structpb"
)

// Amounts and balances are encoded as decimal strings so that values above
// 2^53 survive the trip through a JSON number.

func stringArg(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func amountArg(req *structpb.Struct, key string) (uint64, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return services.ParseAmount(nil)
	}
	return services.ParseAmount(v.AsInterface())
}

// memoArg reads the memo as text from "memo" or as raw bytes from "memo_hex".
// It returns nil when neither was supplied.
func memoArg(req *structpb.Struct) ([]byte, error) {
	text, hasText, err := optionalString(req, "memo")
	if err != nil {
		return nil, err
	}
	encoded, hasHex, err := optionalString(req, "memo_hex")
	if err != nil {
		return nil, err
	}

	switch {
	case hasText && hasHex:
		return nil, fmt.Errorf("%w: memo and memo_hex are exclusive", common.ErrorInvalidArgument)
	case hasHex:
		b, err := hex.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: memo_hex: %v", common.ErrorInvalidArgument, err)
		}
		return b, nil
	case hasText:
		return []byte(text), nil
	}
	return nil, nil
}

// optionalString treats an absent key and an explicit null alike.
func optionalString(req *structpb.Struct, key string) (string, bool, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", false, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "", false, nil
	case *structpb.Value_StringValue:
		return k.StringValue, true, nil
	default:
		return "", false, fmt.Errorf("%w: %s must be a string", common.ErrorInvalidArgument, key)
	}
}

func encodeValue(v any) (any, error) {
	switch x := v.(type) {
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case bool:
		return x, nil
	case services.MemberView:
		return map[string]any{"account": x.Account, "balance": strconv.FormatUint(x.Balance, 10)}, nil
	default:
		return nil, fmt.Errorf("unsupported receipt value %T", v)
	}
}

func encodeEvent(e models.Event) map[string]any {
	m := map[string]any{
		"id":   e.ID.String(),
		"kind": string(e.Kind),
	}
	switch e.Kind {
	case models.EventMemo:
		m["memo_hex"] = hex.EncodeToString(e.Memo)
	default:
		m["amount"] = strconv.FormatUint(e.Amount, 10)
		m["sender"] = e.Sender
		m["recipient"] = e.Recipient
	}
	return m
}

func encodeEvents(events []models.Event) []any {
	out := make([]any, 0, len(events))
	for _, e := range events {
		out = append(out, encodeEvent(e))
	}
	return out
}

func encodeReceipt(r *services.Receipt) (*structpb.Struct, error) {
	m := map[string]any{
		"call_id": r.CallID.String(),
		"height":  r.Height,
		"method":  r.Method,
		"events":  encodeEvents(r.Events),
	}
	if r.Caller != "" {
		m["caller"] = r.Caller
	}

	if r.OK() {
		m["result"] = "ok"
		if r.Value != nil {
			v, err := encodeValue(r.Value)
			if err != nil {
				return nil, err
			}
			m["value"] = v
		}
	} else {
		m["result"] = "err"
		m["code"] = uint32(r.Err.Code)
		m["error"] = r.Err.Message
	}

	return structpb.NewStruct(m)
}
