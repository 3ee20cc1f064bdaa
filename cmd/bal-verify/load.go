package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/eth2030/balkit/bal"
)

// loadList reads a block access list from a file, either as raw RLP bytes
// or, when hexInput is set, as 0x-prefixed hex text.
func loadList(path string, hexInput bool) (bal.BlockAccessList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if hexInput {
		text := strings.TrimSpace(string(data))
		data, err = hexutil.Decode(text)
		if err != nil {
			return nil, fmt.Errorf("decoding hex in %s: %w", path, err)
		}
	}
	list, err := bal.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding access list in %s: %w", path, err)
	}
	return list, nil
}
