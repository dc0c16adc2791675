// Package engine implements the deterministic simulation core of the
// two-snake showdown: snake movement and growth, food and trap lifecycle,
// collision adjudication with shields and advantage time, and the round and
// tournament state machines.
//
// The engine is single-threaded and synchronous. One call to Round.Tick
// advances zero or more discrete simulation steps depending on the wall-clock
// delta supplied by the driver; nothing in this package blocks, sleeps, or
// performs I/O. All randomness flows through an injected *rand.Rand so that a
// given seed, configuration, and intent stream reproduce the exact same match.
//
// Game-rule outcomes (wall hits, traps, spawn-space exhaustion) are modeled as
// state transitions, never as errors. The only error surface is configuration
// validation, which fails fast before a match starts.
package engine
