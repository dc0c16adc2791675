// Package match runs tournaments between two steering policies and manages
// their lifecycle. A Match owns the round controller, the tournament
// standings, and the per-slot policies; the Manager tracks matches by ID
// with optional JSON persistence so standings survive a restart.
//
// Determinism: every round is driven by an rng derived from the match seed
// and the round number, so the same seed, config, and policies reproduce the
// same tournament, and a restored match restarts its interrupted round from
// an identical board.
package match
