// Package textkey turns display titles into canonical comparison keys.
//
// Normalize is the single normalization rule every other package relies on:
// lowercase, strip everything outside [a-z0-9] to spaces, collapse runs,
// trim. It is pure, total, and idempotent. The empty key is never a valid
// match key.
//
// Contains is the case-folded containment test the matcher's substring
// fallback uses. DisplayTitle is the ordered-fallback title selection used
// anywhere a human-readable name is needed.
package textkey
