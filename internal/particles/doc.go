// Package particles implements the particle-dynamics simulation engine.
//
// A [System] owns an ordered store of point masses together with the
// registered [Interaction] and [Constraint] rules that act on them:
//
//   - [Particle]: position, velocity and mass
//   - [ForceKind]: pairwise force laws ([Elastic], [Damping],
//     [Gravitational], [Sticky])
//   - [ExternalForceKind]: single-particle forces ([LinearDrag],
//     [UniformGravity])
//   - [Constraint]: reflective geometric boundaries from the geometry
//     package
//
// One call to [System.Advance] performs an atomic step: forces are
// accumulated into per-particle accelerations in registration order, the
// kinematic state is updated with an explicit half-step position
// correction, constraints are resolved in registration order, and the
// simulation clock moves forward by dt. A failed step leaves the system
// untouched.
//
// # Determinism
//
// For a fixed initial state, fixed dt and fixed registration order,
// repeated runs produce bit-identical results: both force accumulation
// and constraint resolution iterate in registration order, never over an
// unordered collection.
//
// # Thread Safety
//
// System instances are NOT thread-safe. The caller owns the system for
// the duration of each Advance call; snapshots may be taken between
// steps but never during one.
package particles
