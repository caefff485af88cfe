package summary

import (
	"github.com/warp/leave-rules/catalog"
	"github.com/warp/leave-rules/policy"
)

// shortIDLen is the number of id characters shown on a card.
const shortIDLen = 8

// PolicyCard is the list entry for a saved policy.
type PolicyCard struct {
	ID              string `json:"id"`
	ShortID         string `json:"shortId"`
	Name            string `json:"name"`
	CreatedOn       string `json:"createdOn"`
	RuleCount       int    `json:"ruleCount"`
	BaseEntitlement string `json:"baseEntitlement"`
}

// Card builds the list entry for p.
func Card(p policy.SavedPolicy) PolicyCard {
	card := PolicyCard{
		ID:              p.ID,
		ShortID:         p.ID,
		Name:            p.Name,
		RuleCount:       len(p.Rules),
		BaseEntitlement: NotSet,
	}
	if len(card.ShortID) > shortIDLen {
		card.ShortID = card.ShortID[:shortIDLen]
	}
	if !p.CreatedAt.IsZero() {
		card.CreatedOn = p.CreatedAt.Format(catalog.DateLayout)
	}
	if r, ok := lookup(p.Rules, catalog.BaseEntitlement); ok {
		card.BaseEntitlement = valueOr(r.ConditionValue, NotSet)
	}
	return card
}

// Cards builds list entries in saved order.
func Cards(policies []policy.SavedPolicy) []PolicyCard {
	cards := make([]PolicyCard, len(policies))
	for i, p := range policies {
		cards[i] = Card(p)
	}
	return cards
}
