//go:build levelset_debug

package must

// Debug reports whether the engine was built with precondition checks that
// panic rather than clamp/ignore (§7 policy: debug builds panic, release
// builds clamp DeltaTooLarge and ignore a RayIter cap-out).
const Debug = true
