package powsdk

// Service is the RPC-like surface the validator exposes to the consensus
// engine: block queries, on-chain settings, and the block-creation pipeline
// (initialize -> summarize -> finalize). The validator's implementation of
// this interface is out of scope; the engine only ever calls through it.
type Service interface {
	InitializeBlock(previousId *BlockId) error
	SummarizeBlock() ([]byte, error)
	FinalizeBlock(consensus []byte) (BlockId, error)
	CancelBlock() error

	CheckBlocks(ids []BlockId) error
	CommitBlock(id BlockId) error
	IgnoreBlock(id BlockId) error
	FailBlock(id BlockId) error

	GetBlocks(ids []BlockId) (map[string]Block, error)
	GetChainHead() (Block, error)

	GetSettings(blockId BlockId, keys []string) (map[string]string, error)
	GetState(blockId BlockId, addresses []string) (map[string][]byte, error)

	SendTo(peerId PeerId, messageType string, payload []byte) error
	Broadcast(messageType string, payload []byte) error
}

// GetBlock fetches a single block through the batch GetBlocks call, the way
// the engine's own service wrapper does it — there is no singular lookup on
// the validator's RPC surface.
func GetBlock(svc Service, id BlockId) (Block, error) {
	blocks, err := svc.GetBlocks([]BlockId{id})
	if err != nil {
		return Block{}, err
	}
	block, ok := blocks[string(id)]
	if !ok {
		return Block{}, ErrUnknownBlock
	}
	return block, nil
}
