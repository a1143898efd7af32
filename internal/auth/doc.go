// Package auth provides authentication and authorisation for TillPOS.
//
// It implements a 4-tier staff role model (admin → manager → cashier →
// kitchen) with:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - Static role-permission mapping (compile-time, no database lookup)
//   - Explicit acting-user identity passed into every privileged call
//   - Idempotent first-run bootstrap of the default administrator account
//
// The package is an in-process library boundary: there is no wire protocol
// and no token session state. The caller supplies the id of the signed-in
// user on each call, and the user record is re-read from the store so role
// and active-status changes take effect on the next check without re-login.
package auth
