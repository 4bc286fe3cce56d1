//go:build !levelset_debug

package must

// Debug is false in release builds: DeltaTooLarge is clamped rather than
// panicking, and RayIter cap-outs are ignored with the program proceeding
// (§7). DegenerateLayer is not raised in either build: no layer-membership
// check runs after an update.
const Debug = false
