package app

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/campus/leaveflow/workflow"
)

// =============================================================================
// STATIC CREDENTIAL TABLE
// =============================================================================

// Credential pairs an identity with its bcrypt password hash. The table is
// compiled into the application and never persisted.
type Credential struct {
	Identity     workflow.Identity
	PasswordHash string
}

// CredentialTable maps login email to credential.
type CredentialTable map[string]Credential

// Authenticate looks up email and verifies password against the stored hash.
// Unknown emails and mismatched passwords both return ErrInvalidCredentials,
// so a caller cannot distinguish the two.
func (t CredentialTable) Authenticate(email, password string) (workflow.Identity, error) {
	cred, ok := t[email]
	if !ok {
		return workflow.Identity{}, workflow.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return workflow.Identity{}, workflow.ErrInvalidCredentials
	}
	return cred.Identity, nil
}

// DemoCredentials returns the four fixed demo identities, password "123456".
func DemoCredentials() CredentialTable {
	return NewCredentialTable(
		[]workflow.Identity{
			{Email: "staff@example.com", DisplayName: "Dr. Rajesh Kumar", Role: workflow.RoleStaff, Department: "Computer Science"},
			{Email: "hod@example.com", DisplayName: "Dr. Priya Sharma", Role: workflow.RoleHOD, Department: "Computer Science"},
			{Email: "principal@example.com", DisplayName: "Dr. Anil Mehta", Role: workflow.RolePrincipal, Department: "Administration"},
			{Email: "admin@example.com", DisplayName: "Admin User", Role: workflow.RoleAdmin, Department: "Administration"},
		},
		"123456",
	)
}

// NewCredentialTable builds a table where every identity shares one password,
// hashing it once. Panics on hash failure; the table is built at startup from
// compiled-in values, so failure means a broken build, not bad input.
func NewCredentialTable(identities []workflow.Identity, password string) CredentialTable {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("credentials: " + err.Error())
	}

	t := make(CredentialTable, len(identities))
	for _, id := range identities {
		t[id.Email] = Credential{Identity: id, PasswordHash: string(hash)}
	}
	return t
}
