package auth

// Claims is the verified identity claim set extracted from a federated
// provider's ID token. It contains facts only, no decisions: reconciling
// a claim set into a user record is the resolver's job.
type Claims struct {
	Provider       string // e.g. "firebase", "google"
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Email          string // email asserted by the provider
	EmailVerified  bool   // whether the provider asserts email ownership
	DisplayName    string // optional full display name
	PhotoURL       string // optional profile picture URL
}
