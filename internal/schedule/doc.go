// Package schedule provides the scheduled-task descriptor and its matching
// rule for Homestead Core.
//
// A Task is an immutable trigger: a device reference, an action tag with
// optional string parameters, a time of day, a 7-day weekday mask
// (Sunday = index 0) and an enabled flag. A task matches a given instant
// iff it is enabled, its weekday bit is set for that instant, and its
// hour and minute equal the instant's exactly. There is no window and no
// catch-up: a tick that skips past the exact minute silently misses the task.
//
// Execution lives in the system package; this package only decides *when*.
package schedule
