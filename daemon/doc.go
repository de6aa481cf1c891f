// Package daemon implements the orchestrator that ties every other
// package together into a running remapping daemon: it takes the
// single-instance lock, grabs physical devices, creates the virtual
// output device, builds the remap engine, and runs the epoll-driven
// dispatch loop alongside a profile-switch intent consumer.
package daemon
