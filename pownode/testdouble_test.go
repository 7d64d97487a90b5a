package pownode

import (
	"sync"

	"github.com/probeum/pow-consensus/powsdk"
)

// mockService is an in-memory, call-recording powsdk.Service test double:
// a plain id-keyed block map plus counters for every RPC the node can
// issue, so scenario tests can assert on exactly what the node called.
type mockService struct {
	mu sync.Mutex

	blocks    map[string]powsdk.Block
	chainHead powsdk.BlockId
	settings  map[string]string

	initializeBlockCalls []*powsdk.BlockId
	checkBlocksCalls     [][]powsdk.BlockId
	commitBlockCalls     []powsdk.BlockId
	ignoreBlockCalls     []powsdk.BlockId
	failBlockCalls       []powsdk.BlockId
	cancelBlockCalls     int
	summarizeBlockCalls  int
	finalizeBlockCalls   int

	summarizeErr error
	finalizeErr  error
}

func newMockService() *mockService {
	return &mockService{
		blocks:   map[string]powsdk.Block{},
		settings: map[string]string{},
	}
}

func (s *mockService) put(b powsdk.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[string(b.BlockId)] = b
}

func (s *mockService) setChainHead(id powsdk.BlockId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainHead = id
}

func (s *mockService) InitializeBlock(previousId *powsdk.BlockId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initializeBlockCalls = append(s.initializeBlockCalls, previousId)
	return nil
}

func (s *mockService) SummarizeBlock() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summarizeBlockCalls++
	return []byte{}, s.summarizeErr
}

func (s *mockService) FinalizeBlock(consensus []byte) (powsdk.BlockId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalizeBlockCalls++
	if s.finalizeErr != nil {
		return nil, s.finalizeErr
	}
	return powsdk.BlockId("finalized"), nil
}

func (s *mockService) CancelBlock() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelBlockCalls++
	return nil
}

func (s *mockService) CheckBlocks(ids []powsdk.BlockId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkBlocksCalls = append(s.checkBlocksCalls, ids)
	return nil
}

func (s *mockService) CommitBlock(id powsdk.BlockId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitBlockCalls = append(s.commitBlockCalls, id)
	return nil
}

func (s *mockService) IgnoreBlock(id powsdk.BlockId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignoreBlockCalls = append(s.ignoreBlockCalls, id)
	return nil
}

func (s *mockService) FailBlock(id powsdk.BlockId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failBlockCalls = append(s.failBlockCalls, id)
	return nil
}

func (s *mockService) GetBlocks(ids []powsdk.BlockId) (map[string]powsdk.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]powsdk.Block, len(ids))
	for _, id := range ids {
		b, ok := s.blocks[string(id)]
		if !ok {
			return nil, powsdk.ErrUnknownBlock
		}
		out[string(id)] = b
	}
	return out, nil
}

func (s *mockService) GetChainHead() (powsdk.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks[string(s.chainHead)], nil
}

func (s *mockService) GetSettings(blockId powsdk.BlockId, keys []string) (map[string]string, error) {
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

func (s *mockService) GetState(blockId powsdk.BlockId, addresses []string) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}

func (s *mockService) SendTo(peerId powsdk.PeerId, messageType string, payload []byte) error {
	return nil
}

func (s *mockService) Broadcast(messageType string, payload []byte) error { return nil }
