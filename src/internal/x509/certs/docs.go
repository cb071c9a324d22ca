// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs decodes [X.509] certificates for inventory lookups.
// It accepts the formats CA operators commonly hand around ([PEM] single
// or bundle, raw DER and [PKCS7] envelopes) and computes the SHA-256
// fingerprint in the exact form the CCADB export publishes, which is the
// join key into the canonical table.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
