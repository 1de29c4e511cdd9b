// Package diag carries driver diagnostic messages from the graphics API to
// whoever wants to see them.
//
// A Message mirrors the arguments of a GL_KHR_debug callback. Sinks receive
// messages synchronously, on the thread that made the triggering API call,
// and in the order the calls were made:
//
//	rec := &diag.Recorder{}
//	ctx.SetDebugSink(diag.Tee(diag.NewConsole(os.Stdout), rec))
//	// ... API calls ...
//	if rec.HasErrors() {
//		// the specialization failed
//	}
//
// Sinks never filter, deduplicate, or reorder.
package diag
