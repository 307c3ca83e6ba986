// Package qstate binds a typed query-string schema to a navigable
// history and broadcasts every change of that state, whatever caused
// it: an Apply through the engine, back/forward navigation, or an
// external URL edit reported by the history implementation.
//
// The engine is deliberately small. It exposes a subscribe/notify
// contract, a snapshot function, and decode/apply entry points; the
// pure codec and merge machinery lives in packages codec and query,
// and the history side in package history. A UI adapter subscribes,
// re-derives the snapshot on every broadcast, and re-decodes only when
// the snapshot changed:
//
//	eng, _ := qstate.New(hist)
//	schema := query.MustSchema(map[string]query.Setting{
//		"page": query.NewParam(codec.Int()).Default(1),
//		"q":    query.NewParam(codec.String()),
//	})
//
//	last, _ := eng.Snapshot(schema)
//	stop := eng.Subscribe(func() {
//		snap, err := eng.Snapshot(schema)
//		if err != nil || snap == last {
//			return
//		}
//		last = snap
//		state, _ := eng.Decode(schema)
//		render(state)
//	})
//	defer stop()
//
//	eng.Apply(schema, query.Update{"page": 2})
//
// Exactly one notification strategy is active per engine, resolved
// once at construction: a pass-through to the history's own
// navigation events when it implements history.EventSource, or a
// synthetic bus fired from the engine's single commit path otherwise.
// Updates always replace the current navigation entry; the stack never
// grows from a parameter change, and the commit is visible to Snapshot
// and Decode before any subscriber hears about it.
package qstate
