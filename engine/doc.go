// Package engine implements the execution coordinator: it validates a
// dispatch plan, runs the scheduled agents with maximum safe parallelism,
// contains every per-step failure, and merges the settled results into a
// single response envelope.
//
// Scheduling model:
//   - Steps whose dependencies have settled launch together, in plan order.
//   - Each step runs in its own goroutine under a per-step deadline.
//   - A step failure (timeout, agent error, panic) is recorded as a Failed
//     result and never aborts the request.
//   - The envelope merges usable results in launch order, which is itself
//     deterministic, so identical inputs produce identically ordered output.
//
// The only fatal error classes are plan integrity violations, unregistered
// roles, and cancellation of the caller's context.
package engine
