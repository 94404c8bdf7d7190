package model

// CustomerProfile is persisted independently of the cart and survives cart
// clears.
type CustomerProfile struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// ProfilePatch updates a profile field by field at the top level. A present
// Address replaces the stored one wholesale, it is not deep-merged.
type ProfilePatch struct {
	Name    *string  `json:"name,omitempty"`
	Phone   *string  `json:"phone,omitempty"`
	Address *Address `json:"address,omitempty"`
}

func (p CustomerProfile) Merge(patch ProfilePatch) CustomerProfile {
	merged := p
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}
	if patch.Address != nil {
		merged.Address = *patch.Address
	}
	return merged
}

// Complete reports whether the profile carries enough data to check out.
func (p CustomerProfile) Complete() bool {
	return p.Name != "" && p.Phone != ""
}
