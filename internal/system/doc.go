// Package system provides the controller orchestrator for Homestead Core.
//
// A System owns the device registry, the account set, the single in-process
// session, the master on/off switch and the append-only activity log. It is
// the permission boundary: registry mutations and task management check the
// session's permission tags before acting, and the activity log is only
// readable with the logs tag.
//
// # Scheduling
//
// The system does not keep time. An external timer calls Tick once per
// minute with the current instant; Tick evaluates every device's scheduled
// tasks against that instant and executes the matches through the device
// capability interfaces. A tick that arrives while the previous one is
// still running is rejected, not queued.
//
// # Thread Safety
//
// A single mutex serializes every operation; no I/O happens under the lock.
// Device state changes run outside the system lock against the devices' own
// mutexes.
package system
