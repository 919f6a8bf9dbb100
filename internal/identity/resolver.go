package identity

import "strings"

// CustomerIdentity is the resolved identity of an inbound caller.
type CustomerIdentity struct {
	Name  string
	Email string
}

// Resolver maps an inbound end-user target (usually a phone number) to
// a customer identity. In production this would sit in front of a CRM;
// the static implementation below covers the demo account.
type Resolver interface {
	Resolve(target string) CustomerIdentity
}

// NormalizePhone strips everything from a phone-like string except
// digits and a leading plus sign: "+971 (547) 137-304" becomes
// "+971547137304".
func NormalizePhone(number string) string {
	if number == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(number))
	for i, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StaticResolver resolves against a fixed set of known customer phone
// numbers. Anything unknown falls back to a placeholder identity.
type StaticResolver struct {
	known    map[string]CustomerIdentity
	fallback CustomerIdentity
}

// NewStaticResolver returns the demo resolver with the two known
// customer phone candidates.
func NewStaticResolver() *StaticResolver {
	demo := CustomerIdentity{
		Name:  "Asma Hawari",
		Email: "asma.hawari@checkout.com",
	}
	return &StaticResolver{
		known: map[string]CustomerIdentity{
			NormalizePhone("+971547137304"): demo,
			NormalizePhone("15551234567"):   demo,
		},
		fallback: CustomerIdentity{
			Name:  "Valued Customer",
			Email: "unknown@example.com",
		},
	}
}

// Resolve normalizes the target and looks it up among the known
// customers.
func (r *StaticResolver) Resolve(target string) CustomerIdentity {
	if identity, ok := r.known[NormalizePhone(target)]; ok {
		return identity
	}
	return r.fallback
}
