// wire.go implements the canonical wire codec: a deterministic rendering of
// a block access list into a primitive-valued tree, its RLP encoding, the
// inverse decoding, and the keccak256 content hash used to cross-check a
// block-level commitment. The emission order of every compound value is
// fixed by the wire format and does not follow the model's field order:
//
//	AccountChange      -> (address, storage_changes, storage_reads,
//	                       balance_changes, nonce_changes, code_changes)
//	StorageSlotChanges -> (slot, slot_changes)
//	*Change            -> (tx_index, value)
//
// The codec assumes the ordering invariants already hold and does not
// re-validate them; run ValidateOrdering first when the input is untrusted.
package bal

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// Wire mirror types, declared in canonical emission order so the RLP decoder
// reads fields in the same sequence ToWireValue emits them.
type (
	wireStorageValueChange struct {
		TxIndex   uint64
		PostValue common.Hash
	}
	wireStorageSlotChanges struct {
		Slot    common.Hash
		Changes []wireStorageValueChange
	}
	wireBalanceChange struct {
		TxIndex     uint64
		PostBalance uint256.Int
	}
	wireNonceChange struct {
		TxIndex   uint64
		PostNonce uint64
	}
	wireCodeChange struct {
		TxIndex uint64
		NewCode []byte
	}
	wireAccountChange struct {
		Address        common.Address
		StorageChanges []wireStorageSlotChanges
		StorageReads   []common.Hash
		BalanceChanges []wireBalanceChange
		NonceChanges   []wireNonceChange
		CodeChanges    []wireCodeChange
	}
)

// ToWireValue renders the list into a tree of primitives (byte strings,
// unsigned integers and nested lists) in the canonical emission order. The
// result is what the binary encoder serializes; two structurally equal
// lists always yield identical trees.
func ToWireValue(list BlockAccessList) []interface{} {
	accounts := make([]interface{}, len(list))
	for i := range list {
		accounts[i] = accountWireValue(&list[i])
	}
	return accounts
}

func accountWireValue(a *AccountChange) []interface{} {
	slots := make([]interface{}, len(a.StorageChanges))
	for i, sc := range a.StorageChanges {
		changes := make([]interface{}, len(sc.Changes))
		for j, c := range sc.Changes {
			changes[j] = []interface{}{c.TxIndex, c.PostValue.Bytes()}
		}
		slots[i] = []interface{}{sc.Slot.Bytes(), changes}
	}
	reads := make([]interface{}, len(a.StorageReads))
	for i, key := range a.StorageReads {
		reads[i] = key.Bytes()
	}
	balances := make([]interface{}, len(a.BalanceChanges))
	for i, c := range a.BalanceChanges {
		bal := c.PostBalance
		balances[i] = []interface{}{c.TxIndex, &bal}
	}
	nonces := make([]interface{}, len(a.NonceChanges))
	for i, c := range a.NonceChanges {
		nonces[i] = []interface{}{c.TxIndex, c.PostNonce}
	}
	codes := make([]interface{}, len(a.CodeChanges))
	for i, c := range a.CodeChanges {
		codes[i] = []interface{}{c.TxIndex, c.NewCode}
	}
	return []interface{}{a.Address.Bytes(), slots, reads, balances, nonces, codes}
}

// Encode returns the RLP encoding of the list's wire value.
func Encode(list BlockAccessList) ([]byte, error) {
	return rlp.EncodeToBytes(ToWireValue(list))
}

// Decode parses an RLP-encoded block access list. It is the inverse of
// Encode for any input Encode produced; it does not validate ordering.
func Decode(data []byte) (BlockAccessList, error) {
	var accounts []wireAccountChange
	if err := rlp.DecodeBytes(data, &accounts); err != nil {
		return nil, err
	}
	list := make(BlockAccessList, len(accounts))
	for i := range accounts {
		list[i] = fromWireAccount(&accounts[i])
	}
	return list, nil
}

func fromWireAccount(w *wireAccountChange) AccountChange {
	a := AccountChange{Address: w.Address}
	if len(w.StorageChanges) > 0 {
		a.StorageChanges = make([]StorageSlotChanges, len(w.StorageChanges))
		for i, sc := range w.StorageChanges {
			changes := make([]StorageValueChange, len(sc.Changes))
			for j, c := range sc.Changes {
				changes[j] = StorageValueChange{TxIndex: c.TxIndex, PostValue: c.PostValue}
			}
			a.StorageChanges[i] = StorageSlotChanges{Slot: sc.Slot, Changes: changes}
		}
	}
	if len(w.StorageReads) > 0 {
		a.StorageReads = append([]common.Hash(nil), w.StorageReads...)
	}
	if len(w.BalanceChanges) > 0 {
		a.BalanceChanges = make([]BalanceChange, len(w.BalanceChanges))
		for i, c := range w.BalanceChanges {
			a.BalanceChanges[i] = BalanceChange{TxIndex: c.TxIndex, PostBalance: c.PostBalance}
		}
	}
	if len(w.NonceChanges) > 0 {
		a.NonceChanges = make([]NonceChange, len(w.NonceChanges))
		for i, c := range w.NonceChanges {
			a.NonceChanges[i] = NonceChange{TxIndex: c.TxIndex, PostNonce: c.PostNonce}
		}
	}
	if len(w.CodeChanges) > 0 {
		a.CodeChanges = make([]CodeChange, len(w.CodeChanges))
		for i, c := range w.CodeChanges {
			a.CodeChanges[i] = CodeChange{TxIndex: c.TxIndex, NewCode: c.NewCode}
		}
	}
	return a
}

// ContentHash computes the keccak256 hash of the encoded wire value. It is
// deterministic for structurally equal input and is used to cross-check a
// block-level commitment against an independently recomputed value.
func ContentHash(list BlockAccessList) (common.Hash, error) {
	encoded, err := Encode(list)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}
