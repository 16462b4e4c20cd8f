package wallet

import "github.com/dmitrijs2005/gophwallet/internal/server/models"

// Genesis builds the initial member set with zero balances, dropping blank
// and repeated accounts and the contract account.
func Genesis(members []string, contract string) []models.Member {
	seen := make(map[string]struct{}, len(members))
	out := make([]models.Member, 0, len(members))
	for _, a := range members {
		if a == "" || a == contract {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, models.Member{Account: a})
	}
	return out
}
