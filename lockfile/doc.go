// Package lockfile reads and writes the resolution lockfile.
//
// The lockfile captures a finished resolution: the root's direct
// requirements plus one pinned entry per resolved package. It is the durable
// form of the resolution graph consumed by provenance queries.
//
// # Format
//
// The lockfile is TOML:
//
//	version = 1
//	requires = ["a"]
//
//	[[package]]
//	name = "a"
//	version = "1.0.0"
//	dependencies = ["b"]
//
//	[[package]]
//	name = "b"
//	version = "2.0.0"
//
// # Usage
//
//	lf, err := lockfile.ReadFile("packages.lock")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := lf.Graph()
package lockfile
