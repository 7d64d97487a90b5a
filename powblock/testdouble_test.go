package powblock

import (
	"github.com/probeum/pow-consensus/powsdk"
)

// fakeService is a minimal in-memory powsdk.Service backing only what the
// ancestor/difficulty/header tests exercise: a simple id-keyed block map
// with no networking or settings.
type fakeService struct {
	blocks map[string]powsdk.Block
}

func newFakeService() *fakeService {
	return &fakeService{blocks: map[string]powsdk.Block{}}
}

func (s *fakeService) put(b powsdk.Block) {
	s.blocks[string(b.BlockId)] = b
}

func (s *fakeService) InitializeBlock(previousId *powsdk.BlockId) error { return nil }
func (s *fakeService) SummarizeBlock() ([]byte, error)                 { return nil, nil }
func (s *fakeService) FinalizeBlock(consensus []byte) (powsdk.BlockId, error) {
	return nil, nil
}
func (s *fakeService) CancelBlock() error                           { return nil }
func (s *fakeService) CheckBlocks(ids []powsdk.BlockId) error        { return nil }
func (s *fakeService) CommitBlock(id powsdk.BlockId) error           { return nil }
func (s *fakeService) IgnoreBlock(id powsdk.BlockId) error           { return nil }
func (s *fakeService) FailBlock(id powsdk.BlockId) error             { return nil }

func (s *fakeService) GetBlocks(ids []powsdk.BlockId) (map[string]powsdk.Block, error) {
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

func (s *fakeService) GetChainHead() (powsdk.Block, error) { return powsdk.Block{}, nil }

func (s *fakeService) GetSettings(blockId powsdk.BlockId, keys []string) (map[string]string, error) {
	return map[string]string{}, nil
}
func (s *fakeService) GetState(blockId powsdk.BlockId, addresses []string) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}
func (s *fakeService) SendTo(peerId powsdk.PeerId, messageType string, payload []byte) error {
	return nil
}
func (s *fakeService) Broadcast(messageType string, payload []byte) error { return nil }
