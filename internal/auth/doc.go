// Package auth provides identity and authorisation for Homestead Core.
//
// It implements a capability-tag permission model:
//   - Every account holds a flat set of opaque permission tags
//   - Authorisation is a set-membership test, never a role comparison
//   - The role label (ADMIN/USER) is derived from the granted tags for
//     presentation only
//   - Argon2id password hashing (OWASP 2025 recommendation)
//
// Regular accounts receive exactly device:view and device:control at
// creation. Administrator accounts additionally receive device:add,
// device:remove, user:manage, logs:view and system:settings.
package auth
