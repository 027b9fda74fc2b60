package domain

import "time"

// Verification methods.
const (
	MethodBio   = "bio"
	MethodTweet = "tweet"
	MethodOAuth = "oauth"
)

// Challenge is an in-flight bio-code verification attempt.
// PK: wallet_address, SK: social_handle.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type Challenge struct {
	WalletAddress string `json:"wallet_address" dynamodbav:"wallet_address"`
	SocialHandle  string `json:"social_handle" dynamodbav:"social_handle"`
	Code          string `json:"code" dynamodbav:"code"`
	Attempts      int    `json:"attempts" dynamodbav:"attempts"`
	CreatedAt     int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt     int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Key returns the composite lookup key for a challenge.
func (c *Challenge) Key() string {
	return c.WalletAddress + "_" + c.SocialHandle
}

// Expired reports whether the challenge TTL has passed. The stores never
// expire entries on their own; callers check and delete.
func (c *Challenge) Expired(now time.Time) bool {
	return now.Unix() > c.ExpiresAt
}

// OAuthState is an in-flight OAuth handshake, keyed by the opaque state
// token. Single use: the callback deletes it on first lookup.
type OAuthState struct {
	State         string `json:"state" dynamodbav:"state"`
	WalletAddress string `json:"wallet_address" dynamodbav:"wallet_address"`
	SocialHandle  string `json:"social_handle" dynamodbav:"social_handle"`
	CodeVerifier  string `json:"-" dynamodbav:"code_verifier"`
	CreatedAt     int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt     int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the pending state TTL has passed.
func (s *OAuthState) Expired(now time.Time) bool {
	return now.Unix() > s.ExpiresAt
}

// Attestation is the consensus confirmation returned by the attestation
// network for a matched piece of evidence.
type Attestation struct {
	AttestationID    string `json:"attestation_id" dynamodbav:"attestation_id"`
	Proof            string `json:"proof" dynamodbav:"proof"`
	ConsensusReached bool   `json:"consensus_reached" dynamodbav:"consensus_reached"`
	ValidatorCount   int    `json:"validator_count" dynamodbav:"validator_count"`
}

// Evidence carries the method-specific proof that bound a wallet to a handle.
// Exactly one group of fields is populated, matching the record's Method.
type Evidence struct {
	Code string `json:"code,omitempty" dynamodbav:"code,omitempty"`

	TweetID   string `json:"tweet_id,omitempty" dynamodbav:"tweet_id,omitempty"`
	TweetText string `json:"tweet_text,omitempty" dynamodbav:"tweet_text,omitempty"`

	ProfileID     string `json:"profile_id,omitempty" dynamodbav:"profile_id,omitempty"`
	ProfileHandle string `json:"profile_handle,omitempty" dynamodbav:"profile_handle,omitempty"`
	ProfileName   string `json:"profile_name,omitempty" dynamodbav:"profile_name,omitempty"`
}

// VerificationRecord is the durable, immutable result of a successful flow.
// PK: wallet_address — at most one record per wallet, ever.
type VerificationRecord struct {
	RecordID      string      `json:"record_id" dynamodbav:"record_id"`
	WalletAddress string      `json:"wallet_address" dynamodbav:"wallet_address"`
	SocialHandle  string      `json:"social_handle" dynamodbav:"social_handle"`
	Method        string      `json:"verification_method" dynamodbav:"verification_method"`
	Evidence      Evidence    `json:"evidence" dynamodbav:"evidence"`
	Attestation   Attestation `json:"attestation" dynamodbav:"attestation"`
	Verified      bool        `json:"verified" dynamodbav:"verified"`
	VerifiedAt    time.Time   `json:"verified_at" dynamodbav:"verified_at"`
}
