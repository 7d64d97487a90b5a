// Package powsdk models the slice of the validator SDK that the PoW engine
// consumes: block/event types and the Service RPC surface. The validator
// itself, its network stack, and its transaction pool are out of scope; this
// package only carries the shapes the engine reads and writes.
package powsdk

import "bytes"

// BlockId is the validator's opaque, content-addressed block identifier.
type BlockId []byte

// Equal reports whether two BlockIds name the same block.
func (id BlockId) Equal(other BlockId) bool {
	return bytes.Equal(id, other)
}

// String renders the id for logging.
func (id BlockId) String() string {
	return hexString(id)
}

// PeerId is the local node's identity, mixed into mining hashes as a salt.
type PeerId []byte

func (id PeerId) String() string {
	return hexString(id)
}

func hexString(b []byte) string {
	const hextable = "0123456789abcdef"
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0x0f]
	}
	return string(out)
}

// NullBlockIdentifier is the sentinel previous-id on a block with no parent.
var NullBlockIdentifier = BlockId{0, 0, 0, 0, 0, 0, 0, 0}

// Block is the subset of validator block fields the consensus core reads.
type Block struct {
	BlockId    BlockId
	PreviousId BlockId
	BlockNum   uint64
	SignerId   []byte
	Payload    []byte
}

// PeerInfo describes the local node's identity as reported by the validator
// at startup.
type PeerInfo struct {
	PeerId PeerId
}

// StartupState is handed to Engine.Start by the validator.
type StartupState struct {
	ChainHead     Block
	Peers         []PeerInfo
	LocalPeerInfo PeerInfo
}

// UpdateKind enumerates the validator event types the engine handles.
type UpdateKind int

const (
	UpdateBlockNew UpdateKind = iota
	UpdateBlockValid
	UpdateBlockInvalid
	UpdateBlockCommit
	UpdatePeerConnected
	UpdatePeerDisconnected
	UpdatePeerMessage
	UpdateShutdown
)

// Update is one event delivered by the validator over the update channel.
// Only the fields relevant to its Kind are populated.
type Update struct {
	Kind    UpdateKind
	Block   Block
	BlockId BlockId
}
