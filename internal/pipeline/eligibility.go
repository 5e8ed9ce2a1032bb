package pipeline

import "funil.app/crm/internal/model"

// IsEligibleForPromotion is the fixed bulk-promotion heuristic: an active
// base lead with a name, a company or position, and an email or phone.
func IsEligibleForPromotion(lead *model.Lead) bool {
	if lead.Stage != model.StageBase || lead.IsArchived() {
		return false
	}
	if blank(lead.Name) {
		return false
	}
	if blank(lead.Company) && blank(lead.Position) {
		return false
	}
	return !blank(lead.Email) || !blank(lead.Phone)
}

// FindEligibleForPromotion keeps input order.
func FindEligibleForPromotion(leads []model.Lead) []model.Lead {
	out := make([]model.Lead, 0, len(leads))
	for i := range leads {
		if IsEligibleForPromotion(&leads[i]) {
			out = append(out, leads[i])
		}
	}
	return out
}
