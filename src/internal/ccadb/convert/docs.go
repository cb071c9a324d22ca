// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package convert drives the two-pass CCADB conversion pipeline.
//
// Pass one streams the export into the hierarchy builder and derives every
// root's direct trust from its store statuses. The forest is then built and
// trust propagated down to the intermediates. Pass two re-reads the export
// and emits the canonical header and rows into a Sink.
//
// Two passes keep memory flat: only identity and trust state is held
// between passes, never the records themselves. The pipeline is
// all-or-nothing; any structural error aborts before the sink is flushed,
// so a partially converted artifact is never produced.
package convert
