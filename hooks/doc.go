// Package hooks is the runtime behind generated hook containers.
//
// A container is declared by embedding Hooks (struct) or HookSet
// (interface) and listing properties whose types are one of the ten
// declaration markers:
//
//	type CarHooks struct {
//		hooks.Hooks
//
//		Accelerate hooks.Sync[func(newSpeed int)]
//		Brake      hooks.SyncBail[func(x, y int) string]
//	}
//
// hookgen turns each property into a concrete type embedding one of the ten
// base hooks in this package (SyncHook, SyncBailHook, ...). The bases own the
// tap list, the interceptors and the dispatch algorithm; generated code only
// adapts the declared signature to the base's generic invocation shape.
//
// Every Call creates a fresh HookContext shared by the call interceptors,
// tap interceptors and taps of that call.
package hooks
