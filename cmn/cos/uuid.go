// Package cos provides common low-level identifier utilities shared across
// the relay core.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package cos

import (
	"strconv"
	"sync/atomic"

	"github.com/OneOfOne/xxhash"
	"github.com/teris-io/shortid"
)

// Alphabet for generating short, collision-resistant IDs (similar to
// shortid's own default alphabet).
const idABC = "-5nZJDft6LuzsjGNpPwY7rQa39vehq4i1cV2FROo8yHSlC0BUEdWbIxMmTgKXAk_"

var (
	sid  *shortid.Shortid
	rtie uint32
)

// InitIDGen seeds the process-wide ID generator. Call once at start-up.
func InitIDGen(seed uint64) {
	sid = shortid.MustNew(4 /*worker*/, idABC, seed)
}

// GenMsgID returns a short opaque identifier suitable for wire.Message.MsgID
// (request/response correlation).
func GenMsgID() string {
	uuid := sid.MustGenerate()
	if !isAlpha(uuid[0]) {
		tie := atomic.AddUint32(&rtie, 1)
		uuid = string(rune('A'+tie%26)) + uuid
	}
	return uuid
}

// seed used when hashing interface/container names into short tags; value
// has no significance beyond being fixed across a process lifetime.
const hashSeed = 0x1b873593

// HashTag derives a short, deterministic tag suffix from an arbitrary name,
// used when a container needs a stable per-interface discriminator.
func HashTag(name string) string {
	digest := xxhash.Checksum64S([]byte(name), hashSeed)
	return strconv.FormatUint(digest, 36)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
