package executor

// Per spec §7, the executor's fallible operations surface as booleans
// rather than errors: QueueFull and ShuttingDown both manifest as
// QueueJob returning false. No sentinel errors are needed for the public
// API; New can still fail to construct the underlying worker pool, which
// it reports as a wrapped error.
