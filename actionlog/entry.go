package actionlog

import (
	"fmt"

	"github.com/AntonStoeckl/campus-resource-hub/core"
)

// TimestampLayout is the layout used when rendering entry timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Kind tags what kind of action an Entry records, e.g. "deposit" or "allocation".
type Kind = string

// Well-known kinds recorded by the hub's entities.
const (
	KindDeposit     Kind = "deposit"
	KindWithdrawal  Kind = "withdrawal"
	KindTransferOut Kind = "transfer_out"
	KindTransferIn  Kind = "transfer_in"
	KindAllocation  Kind = "allocation"
	KindRelease     Kind = "release"
	KindBorrow      Kind = "borrow"
	KindEnrollment  Kind = "enrollment"
	KindApproval    Kind = "approval"
	KindDenial      Kind = "denial"
)

// Entry is a single recorded action.
type Entry struct {
	OccurredAt core.OccurredAt
	Kind       Kind
	Detail     string
}

// String renders the entry as "[2006-01-02 15:04:05] kind: detail".
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.OccurredAt.Format(TimestampLayout), e.Kind, e.Detail)
}
