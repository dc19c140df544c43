/*
Package workgraph executes units of work in dependency order.

A Job wraps a unit of work together with the artifacts it depends on and the
access it needs to the shared context. The Executor runs every job on a pool
of worker goroutines as soon as all of its dependencies have completed. Jobs
block only on the locks of the artifacts they access, never on other jobs.

After the first job error no further jobs are started. Jobs already running
are waited for, then all errors are returned together.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package workgraph

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otbackend.workgraph'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.workgraph")
}
