// Package mdvsp is the umbrella for a Multi-Depot Vehicle Scheduling
// Problem solver built around column generation.
//
// A fleet of vehicles housed at capacity-limited depots must cover a set
// of timetabled trips at minimum operating plus deadhead cost, each trip
// covered by exactly one vehicle. The solver grows a pool of candidate
// vehicle schedules ("columns") by alternating a restricted master LP
// with one shortest-path pricing subproblem per depot, then drives the
// fractional solution toward an integer one with truncated column
// generation, a fix-one-column-at-a-time primal heuristic.
//
// The work is organized under focused subpackages:
//
//	instance/         — immutable problem data and its adjacency caches
//	master/           — RRMP contract, column bookkeeping, import/export
//	master/glpkmaster — the GLPK-backed LP backend
//	pricing/          — pricing contract, dual snapshots, path extraction
//	pricing/spfa      — SPFA pricing with a negative-cycle guard
//	pricing/bellman   — Bellman-Ford reference pricing
//	pricing/mip       — flow-MIP pricing over the same contract
//	cgengine/         — the two-phase column-generation loop
//	tcg/              — the truncated-CG fixing heuristic
//	cmd/mdvsp-colgen  — the command-line surface
package mdvsp
