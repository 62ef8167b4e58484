package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_verifier_mock.go -package=mock

// PasswordVerifier checks the password a client sends in its Login packet
// against the one the server was started with.
//
// The configured password never stays in memory in plain form: it is hashed
// with Argon2id and a random salt when the verifier is built, and every
// candidate is hashed the same way and compared in constant time.
type PasswordVerifier interface {
	// Verify reports whether candidate matches the configured password.
	Verify(candidate string) bool

	// Open reports whether the server accepts any password.
	Open() bool
}
