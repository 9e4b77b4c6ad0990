package crypto

import "errors"

// ErrCorruptCredential reports a stored credential record that cannot be
// decoded. It is never returned for a PIN mismatch.
var ErrCorruptCredential = errors.New("stored credential is corrupt")
