// Package signal holds the pure scoring signals that are fused into a match
// confidence: token overlap, deadline urgency, geographic match and fuzzy
// keyword similarity. Nothing in this package allocates shared state or
// performs I/O; every function is safe for concurrent use.
package signal
