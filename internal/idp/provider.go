package idp

import "context"

// AccountType is the CMU IT account category (itaccounttype_id).
type AccountType string

const (
	AccountTypeStudent  AccountType = "StdAcc"
	AccountTypeEmployee AccountType = "MISEmpAcc"
	AccountTypeAlumni   AccountType = "AlumAcc"
	AccountTypeGuest    AccountType = "GuestAcc"
)

// Profile is the CMU basic info returned by the profile endpoint.
// Optional fields are pointers so "absent" stays distinct from "empty":
// staff and alumni accounts carry no student_id at all.
type Profile struct {
	AccountName        string      `json:"cmuitaccount_name"`
	Account            string      `json:"cmuitaccount"`
	StudentID          *string     `json:"student_id,omitempty"`
	PrenameID          *string     `json:"prename_id,omitempty"`
	PrenameTH          *string     `json:"prename_TH,omitempty"`
	PrenameEN          *string     `json:"prename_EN,omitempty"`
	FirstNameTH        string      `json:"firstname_TH"`
	FirstNameEN        string      `json:"firstname_EN"`
	LastNameTH         string      `json:"lastname_TH"`
	LastNameEN         string      `json:"lastname_EN"`
	OrganizationCode   string      `json:"organization_code"`
	OrganizationNameTH string      `json:"organization_name_TH"`
	OrganizationNameEN string      `json:"organization_name_EN"`
	AccountType        AccountType `json:"itaccounttype_id"`
	AccountTypeTH      string      `json:"itaccounttype_TH"`
	AccountTypeEN      string      `json:"itaccounttype_EN"`
}

// Provider is the identity provider as seen by the sign-in handshake.
// Both calls collapse every failure (transport, status, missing fields) into
// ok=false; the reason is logged but never returned, so nothing about the
// provider's internals reaches the browser.
type Provider interface {
	// ExchangeCode trades an authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (accessToken string, ok bool)

	// FetchProfile reads the account's basic info with a bearer access token.
	FetchProfile(ctx context.Context, accessToken string) (profile *Profile, ok bool)

	// AuthURL is the consent page the browser is sent to before sign-in.
	AuthURL() string
}
