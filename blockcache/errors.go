package blockcache

import "errors"

// Per spec §7, cache failures are soft: ProviderUnavailable,
// DeserializationFailed and PersistFailed all manifest as a false return
// from Persist/Provide, never as a propagated error, and in-memory state
// is left unchanged. These sentinels exist only for scan-time validation
// (spec §6.2's filename constraint).
var ErrInvalidKeySegment = errors.New("blockcache: cache_key, width and position segments must not contain '_' or '.'")
