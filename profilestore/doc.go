// Package profilestore is the file-backed adapter for the profile
// persistence interface: one YAML document per profile under a config
// directory, plus a single-line "active" file naming the active
// profile's ID. Writes are atomic; external changes to the active
// pointer can be observed through a Watcher.
package profilestore
