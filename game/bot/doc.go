// Package bot provides the built-in steering policies that drive snakes from
// round snapshots. Policies are pure deciders: they read a snapshot, never
// mutate it, and return a direction intent for their own slot. Greedy and
// Strategic are fully deterministic; Random draws from an injected seed, so
// a match replays identically for the same seed.
package bot
