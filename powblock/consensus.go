// Package powblock implements the consensus payload wire format, the
// BlockHeader view over a validator block, the ancestor and paired-fork
// iterators, and the difficulty controller.
package powblock

import (
	"bytes"
	"fmt"
	"strconv"
)

const (
	consensusTag   = "PoW"
	consensusGlue  = ':'
)

// ConsensusError covers payload parsing and proof-of-work validation
// failures (§7).
type ConsensusError struct {
	Kind   string // "parsing", "not-pow", "invalid-hash"
	Detail string
}

func (e *ConsensusError) Error() string {
	switch e.Kind {
	case "not-pow":
		return fmt.Sprintf("not a PoW consensus: %s", e.Detail)
	case "invalid-hash":
		return fmt.Sprintf("hash doesn't meet difficulty: %s", e.Detail)
	default:
		return fmt.Sprintf("unparsable consensus: %s", e.Detail)
	}
}

func parsingError(field, reason string) *ConsensusError {
	return &ConsensusError{Kind: "parsing", Detail: field + ":" + reason}
}

// BlockConsensus is the parsed PoW payload embedded in a block (§3).
type BlockConsensus struct {
	Tag        [3]byte
	Difficulty uint32
	Timestamp  float64
	Nonce      uint64
}

// IsPoW reports whether the consensus tag identifies this as a PoW payload.
func (c BlockConsensus) IsPoW() bool {
	return c.Tag == [3]byte{'P', 'o', 'W'}
}

// IsPoWConsensus reports whether payload deserializes into a valid PoW
// consensus, without propagating the parse error to the caller.
func IsPoWConsensus(payload []byte) bool {
	c, err := DeserializeConsensus(payload)
	return err == nil && c.IsPoW()
}

// SerializeConsensus renders the wire format described in §6.1:
// `PoW:<difficulty>:<nonce>:<timestamp>`.
func SerializeConsensus(difficulty uint32, nonce uint64, timestamp float64) []byte {
	return []byte(fmt.Sprintf("%s:%d:%d:%s", consensusTag, difficulty, nonce, formatTimestamp(timestamp)))
}

func formatTimestamp(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// DeserializeConsensus parses the wire format. It reads exactly 3 bytes for
// the tag, one glue byte, then three colon-terminated fields (the final one
// terminated by EOF); empty trailing fields parse as their zero value.
func DeserializeConsensus(payload []byte) (BlockConsensus, error) {
	var out BlockConsensus

	if len(payload) < 3 {
		return out, parsingError("tag", "unexpected EOF")
	}
	copy(out.Tag[:], payload[:3])
	rest := payload[3:]

	if !out.IsPoW() {
		return out, &ConsensusError{Kind: "not-pow", Detail: "invalid tag"}
	}

	if len(rest) == 0 {
		return out, parsingError("glue", "unexpected EOF")
	}
	if rest[0] != consensusGlue {
		return out, parsingError("glue", "expected ':'")
	}
	rest = rest[1:]

	difficultyField, rest := readSequence(rest)
	nonceField, rest := readSequence(rest)
	timestampField, _ := readSequence(rest)

	var (
		difficulty, nonce uint64
		timestamp         float64
		err               error
	)
	if len(difficultyField) > 0 {
		if difficulty, err = strconv.ParseUint(string(difficultyField), 10, 32); err != nil {
			return out, parsingError("difficulty", err.Error())
		}
	}
	if len(nonceField) > 0 {
		if nonce, err = strconv.ParseUint(string(nonceField), 10, 64); err != nil {
			return out, parsingError("nonce", err.Error())
		}
	}
	if len(timestampField) > 0 {
		if timestamp, err = strconv.ParseFloat(string(timestampField), 64); err != nil {
			return out, parsingError("timestamp", err.Error())
		}
	}

	out.Difficulty = uint32(difficulty)
	out.Nonce = nonce
	out.Timestamp = timestamp
	return out, nil
}

// readSequence reads bytes up to (and consuming) the next glue byte, or to
// EOF if none remains. It returns the field and whatever bytes follow the
// terminator.
func readSequence(b []byte) (field, remainder []byte) {
	idx := bytes.IndexByte(b, consensusGlue)
	if idx < 0 {
		return b, nil
	}
	return b[:idx], b[idx+1:]
}
