package domain

// Profile is the social-platform profile evidence fetched for the bio flow.
type Profile struct {
	Handle  string `json:"handle"`
	BioText string `json:"bio_text"`
}

// Tweet is the evidence fetched for the tweet flow.
type Tweet struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	AuthorHandle string `json:"author_handle"`
}

// ProfileEvidence is the profile returned by the OAuth code exchange.
type ProfileEvidence struct {
	ProfileID string `json:"profile_id"`
	Handle    string `json:"handle"`
	Name      string `json:"name"`
}

// AttestationInput is the evidence package submitted to the attestation
// network once it has been matched locally.
type AttestationInput struct {
	WalletAddress string   `json:"wallet_address"`
	SocialHandle  string   `json:"social_handle"`
	Method        string   `json:"verification_method"`
	Evidence      Evidence `json:"evidence"`
}
