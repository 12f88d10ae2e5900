// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides the certificate handles a verification context
// is initialized from, and the codec used to load them.
//
// [Certificate] wraps a single native certificate and [Stack] an ordered
// collection of them (the untrusted chain, or a trusted set). Both follow the
// same ownership rules as every other handle: owning handles free the native
// resource when their last reference is released, non-owning ones never do.
//
// [Codec] decodes [X.509] certificates from [PEM], DER and [PKCS7] input and
// encodes them back to PEM or DER.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
