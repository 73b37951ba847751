// Package valueobject defines immutable domain value objects.
package valueobject

import "github.com/google/uuid"

// TransferPair binds the two legs of a transfer: the debited source
// transaction and the mirrored deposit on the destination account.
//
// Both ids are allocated before either row is written, so the legs carry
// their mutual references from the moment they exist. There is no
// back-patching step, and the pair is created or deleted as a whole.
type TransferPair struct {
	SourceTransactionID      uuid.UUID
	DestinationTransactionID uuid.UUID
}

// NewTransferPair allocates a pair of transaction ids for a transfer.
func NewTransferPair() TransferPair {
	return TransferPair{
		SourceTransactionID:      uuid.New(),
		DestinationTransactionID: uuid.New(),
	}
}
