// Package tokens stores password-reset tokens. Expiry is decided by the
// caller; stores only keep {username, created}.
package tokens
