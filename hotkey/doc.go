// Package hotkey holds the thread-safe intent queue the daemon
// orchestrator drains between dispatch iterations. Intents are produced
// by an external global-hotkey listener and by a profilestore.Watcher on
// the active-pointer file; neither producer is implemented here (the
// listener is out of scope, and the watcher lives in profilestore) —
// only the queue both feed and the orchestrator consumes.
package hotkey
