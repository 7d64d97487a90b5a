package main

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"github.com/probeum/pow-consensus/powblock"
	"github.com/probeum/pow-consensus/powsdk"
)

// devService is a single-process, in-memory powsdk.Service for --dev mode:
// a local chain with no networking and no peers, useful for exercising the
// engine without a validator attached. It auto-validates PoW synchronously
// on CheckBlocks rather than waiting on a validator's own block-validation
// pipeline, since there is no separate pipeline in this mode.
type devService struct {
	mu        sync.Mutex
	blocks    map[string]powsdk.Block
	chainHead powsdk.BlockId
	pending   *powsdk.Block
	nextNum   uint64
	peerID    powsdk.PeerId
	updates   chan<- powsdk.Update
	settings  map[string]string
}

func newDevService(peerID powsdk.PeerId, updates chan<- powsdk.Update) *devService {
	genesis := powsdk.Block{
		BlockId:    blockIDFor(0, nil),
		PreviousId: powsdk.NullBlockIdentifier,
		BlockNum:   0,
		SignerId:   peerID,
	}
	return &devService{
		blocks:    map[string]powsdk.Block{string(genesis.BlockId): genesis},
		chainHead: genesis.BlockId,
		nextNum:   1,
		peerID:    peerID,
		updates:   updates,
		settings:  map[string]string{},
	}
}

func blockIDFor(num uint64, payload []byte) powsdk.BlockId {
	h := sha256.New()
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], num)
	h.Write(n[:])
	h.Write(payload)
	return powsdk.BlockId(h.Sum(nil))
}

func (s *devService) InitializeBlock(previousId *powsdk.BlockId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.chainHead
	if previousId != nil {
		prev = *previousId
	}
	parent, ok := s.blocks[string(prev)]
	if !ok {
		return powsdk.ErrUnknownBlock
	}
	s.pending = &powsdk.Block{
		PreviousId: prev,
		BlockNum:   parent.BlockNum + 1,
		SignerId:   s.peerID,
	}
	return nil
}

func (s *devService) SummarizeBlock() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, powsdk.ErrInvalidState
	}
	return []byte{}, nil
}

func (s *devService) FinalizeBlock(consensus []byte) (powsdk.BlockId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, powsdk.ErrInvalidState
	}
	block := *s.pending
	block.Payload = consensus
	block.BlockId = blockIDFor(block.BlockNum, consensus)
	s.blocks[string(block.BlockId)] = block
	s.pending = nil
	return block.BlockId, nil
}

func (s *devService) CancelBlock() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	return nil
}

// CheckBlocks validates each block's PoW synchronously and pushes the
// resulting BlockValid/BlockInvalid event, standing in for the validator's
// own asynchronous block-validation pipeline.
func (s *devService) CheckBlocks(ids []powsdk.BlockId) error {
	for _, id := range ids {
		s.mu.Lock()
		block, ok := s.blocks[string(id)]
		s.mu.Unlock()
		if !ok {
			return powsdk.ErrUnknownBlock
		}
		header, err := powblock.NewBlockHeader(block)
		kind := powsdk.UpdateBlockValid
		if err != nil {
			kind = powsdk.UpdateBlockInvalid
		} else if err := header.Validate(header.Consensus.Difficulty); err != nil {
			kind = powsdk.UpdateBlockInvalid
		}
		s.updates <- powsdk.Update{Kind: kind, BlockId: id}
	}
	return nil
}

func (s *devService) CommitBlock(id powsdk.BlockId) error {
	s.mu.Lock()
	s.chainHead = id
	s.mu.Unlock()
	s.updates <- powsdk.Update{Kind: powsdk.UpdateBlockCommit, BlockId: id}
	return nil
}

func (s *devService) IgnoreBlock(id powsdk.BlockId) error { return nil }
func (s *devService) FailBlock(id powsdk.BlockId) error   { return nil }

func (s *devService) GetBlocks(ids []powsdk.BlockId) (map[string]powsdk.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]powsdk.Block, len(ids))
	for _, id := range ids {
		block, ok := s.blocks[string(id)]
		if !ok {
			return nil, powsdk.ErrUnknownBlock
		}
		out[string(id)] = block
	}
	return out, nil
}

func (s *devService) GetChainHead() (powsdk.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks[string(s.chainHead)], nil
}

func (s *devService) GetSettings(blockId powsdk.BlockId, keys []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.settings[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *devService) GetState(blockId powsdk.BlockId, addresses []string) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}

func (s *devService) SendTo(peerId powsdk.PeerId, messageType string, payload []byte) error {
	return nil
}

func (s *devService) Broadcast(messageType string, payload []byte) error { return nil }
