// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides reusable byte buffer pooling to reduce garbage collection overhead.
// It abstracts the [bytebufferpool] library to provide a consistent interface for
// buffer management across the application, particularly the per-cell string
// assembly in the record canonicalizer (fingerprint re-encoding, CRL list joins).
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
