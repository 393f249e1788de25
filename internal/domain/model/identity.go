package model

// IdentityChecks are the facts reported by the identity-verification service.
type IdentityChecks struct {
	PhoneVerified       bool `json:"phone_verified"`
	AddressVerified     bool `json:"address_verified"`
	PrimaryIDVerified   bool `json:"primary_id_verified"`
	SecondaryIDVerified bool `json:"secondary_id_verified"`
}

// Failed names every check that did not pass.
func (c IdentityChecks) Failed() []string {
	var failed []string
	if !c.PhoneVerified {
		failed = append(failed, CheckIdentityPhone)
	}
	if !c.AddressVerified {
		failed = append(failed, CheckIdentityAddress)
	}
	if !c.PrimaryIDVerified {
		failed = append(failed, CheckIdentityPrimaryID)
	}
	if !c.SecondaryIDVerified {
		failed = append(failed, CheckIdentitySecondary)
	}
	return failed
}

// Passed reports whether every check passed.
func (c IdentityChecks) Passed() bool { return len(c.Failed()) == 0 }
