package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophwallet/internal/common"
)

// maxExactFloat is the largest integer a JSON number carries without loss.
const maxExactFloat = 1 << 53

// ParseAmount converts a decoded request value into an amount. Numbers must be
// integral and exactly representable; larger amounts travel as decimal strings.
// Negative amounts become 0 so they are rejected by the wallet with INVALID_AMOUNT
// in the regular guard order.
func ParseAmount(v any) (uint64, error) {
	switch a := v.(type) {
	case float64:
		if math.IsNaN(a) || math.IsInf(a, 0) || a != math.Trunc(a) {
			return 0, fmt.Errorf("%w: amount must be an integer", common.ErrorInvalidArgument)
		}
		if a < 0 {
			return 0, nil
		}
		if a > maxExactFloat {
			return 0, fmt.Errorf("%w: amount above 2^53 must be sent as a string", common.ErrorInvalidArgument)
		}
		return uint64(a), nil
	case string:
		s := strings.TrimSpace(a)
		if neg, ok := strings.CutPrefix(s, "-"); ok {
			if _, err := strconv.ParseUint(neg, 10, 64); err != nil {
				return 0, fmt.Errorf("%w: malformed amount %q", common.ErrorInvalidArgument, a)
			}
			return 0, nil
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: malformed amount %q", common.ErrorInvalidArgument, a)
		}
		if n > common.MaxAmount {
			return 0, fmt.Errorf("%w: amount above %d", common.ErrorInvalidArgument, common.MaxAmount)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%w: amount is required", common.ErrorInvalidArgument)
	default:
		return 0, fmt.Errorf("%w: unsupported amount type %T", common.ErrorInvalidArgument, v)
	}
}

func checkMemo(memo []byte) error {
	if len(memo) > common.MaxMemoLength {
		return fmt.Errorf("%w: memo longer than %d bytes", common.ErrorInvalidArgument, common.MaxMemoLength)
	}
	return nil
}

func checkAccount(name, account string) error {
	if strings.TrimSpace(account) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrorInvalidArgument, name)
	}
	return nil
}
